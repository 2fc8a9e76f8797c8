// Package services defines the error taxonomy shared by marquee's external
// collaborators and the HTTP boundary.
//
// Errors are tagged with sentinel markers (fetch failure, no data, empty
// selection, transient) so handlers can classify them with errors.Is without
// inspecting message text.
package services
