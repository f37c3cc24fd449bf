// Package metadata loads per-form validation metadata (namespace override and
// extras rules) from JSON, YAML or TOML documents and applies it to forms
// before binding.
//
// A document lists forms by name:
//
//	forms:
//	  signup:
//	    namespace: data-parsley
//	    extras:
//	      confirm:
//	        equalto: password
package metadata
