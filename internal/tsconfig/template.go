package tsconfig

import "os"

// LoadTemplate reads the base configuration template from path.
func LoadTemplate(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &TemplateError{Path: path, Err: err}
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, &TemplateError{Path: path, Err: err}
	}
	return doc, nil
}
