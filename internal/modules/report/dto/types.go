package dto

type ExportInput struct {
	Season string
}

type ExportOutput struct {
	Season   string
	Path     string
	Sessions int
}
