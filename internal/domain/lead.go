package domain

// Lead — заявка на замер, собранная анкетой.
// Пустая строка в необязательных полях (Phone, Comment) означает «не указано».
type Lead struct {
	Name     string
	Street   string
	House    string
	Building string
	Area     float64
	Phone    string
	CallTime string
	Comment  string
}
