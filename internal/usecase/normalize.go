package usecase

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fellowfy-fy/SnapCeilingBot/internal/domain"
)

// SkipToken — ответ пользователя «пропустить необязательное поле».
const SkipToken = "пропустить"

var (
	areaUnits = []string{"м2", "м^2", "кв.м", "кв м", "м²"}

	buildingSkips = map[string]struct{}{
		"нет":     {},
		"—":       {},
		"-":       {},
		SkipToken: {},
	}
)

// IsSkip — ответ равен «пропустить» без учета регистра и пробелов по краям.
func IsSkip(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), SkipToken)
}

// ParseArea достает площадь из текста вида "45,5 кв.м".
// ok = false, если остаток не конечное число. Знак проверяет вызывающий.
func ParseArea(text string) (float64, bool) {
	t := cases.Lower(language.Russian).String(text)
	t = strings.ReplaceAll(t, ",", ".")
	for _, unit := range areaUnits {
		t = strings.ReplaceAll(t, unit, "")
	}
	t = strings.Join(strings.Fields(t), "")
	if t == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// NormalizePhone оставляет цифры и ведущий '+', "8..." превращается в "+7...".
func NormalizePhone(text string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(text) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	phone := b.String()
	if strings.HasPrefix(phone, "8") {
		phone = "+7" + phone[1:]
	}
	return phone
}

// FormatAddress собирает «<улица>, дом <дом>[, корп/стр <корпус>]».
func FormatAddress(l domain.Lead) string {
	street := strings.TrimSpace(l.Street)
	house := strings.TrimSpace(l.House)
	building := strings.TrimSpace(l.Building)

	addr := street
	if house != "" {
		addr = street + ", дом " + house
	}
	if building != "" && !isBuildingSkip(building) {
		addr += ", корп/стр " + building
	}
	return addr
}

func isBuildingSkip(s string) bool {
	_, ok := buildingSkips[cases.Lower(language.Russian).String(s)]
	return ok
}
