package usecase

// arrayField pulls an array-valued field out of a raw document. A nil
// document or a missing field reads as an empty array.
func arrayField(doc map[string]interface{}, field string) []interface{} {
	if doc == nil {
		return nil
	}
	arr, _ := doc[field].([]interface{})
	return arr
}

// stringField is a lenient lookup used when reporting on entries that
// failed strict decoding.
func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}
