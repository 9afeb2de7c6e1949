// Package ctcheck holds static policy tests over the packages that handle
// secret material. It has no API; the checks live in its _test.go files.
package ctcheck
