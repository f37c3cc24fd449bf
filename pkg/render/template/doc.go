// Package template defines the template rendering seam shared by widgets and
// form renderers. Implementations live in subpackages.
package template
