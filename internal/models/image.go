package models

// ImageUpload carries a client-supplied image through the service layer.
// Filename is the original (untrusted) name, used only as a naming hint.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}
