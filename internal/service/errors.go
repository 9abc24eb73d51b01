package service

// ValidationError carries the per-field error map produced by the
// validation layer. The handler renders it as a 422 with the map attached.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }

func validationFailed(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}

// clampPage нормализует пагинацию: страница от 1, размер в пределах [1, 100]
func clampPage(page, perPage int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}
	return perPage, (page - 1) * perPage
}
