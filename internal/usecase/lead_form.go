package usecase

import (
	"context"
	"strings"

	"github.com/fellowfy-fy/SnapCeilingBot/internal/domain"
)

// Шаги анкеты «запись на замер», строго в этом порядке.
type Step string

const (
	StepIdle     Step = "idle"
	StepName     Step = "name"
	StepStreet   Step = "addr_street"
	StepHouse    Step = "addr_house"
	StepBuilding Step = "addr_building"
	StepArea     Step = "area"
	StepPhone    Step = "phone"
	StepCallTime Step = "call_time"
	StepComment  Step = "comment"
	StepConfirm  Step = "confirm"
)

// Теги кнопок, которыми управляется анкета.
const (
	ActionBook    = "lead:book"
	ActionConfirm = "lead:confirm"
	ActionRestart = "lead:restart"
	ActionCancel  = "lead:cancel"
)

// FormSteps — шаги ввода по порядку, последний — предпросмотр.
var FormSteps = []Step{
	StepName,
	StepStreet,
	StepHouse,
	StepBuilding,
	StepArea,
	StepPhone,
	StepCallTime,
	StepComment,
	StepConfirm,
}

// Минимальная длина введенного номера после нормализации, вместе с '+'.
const minPhoneLen = 7

type Button struct {
	Label  string
	Action string
}

var (
	BookButton = Button{Label: "📏 Записаться на замер", Action: ActionBook}

	confirmButtons = []Button{
		{Label: "✅ Отправить", Action: ActionConfirm},
		{Label: "🔄 Начать заново", Action: ActionRestart},
		{Label: "❌ Отменить", Action: ActionCancel},
	}
)

// Session — состояние анкеты одного чата.
type Session struct {
	Step Step
	Lead domain.Lead
}

// Input — один ответ пользователя: текст или контакт.
type Input struct {
	Text         string
	ContactPhone string
	IsContact    bool
}

// Reply — ответ, не зависящий от Telegram. Пустой Text означает «ничего не отправлять».
type Reply struct {
	Text           string
	Buttons        []Button
	RequestContact bool
	RemoveKeyboard bool
	LeadSent       bool
}

const (
	textStart    = "Давайте оформим заявку на замер.\n\nКак вас зовут?"
	textName     = "Как вас зовут?"
	textStreet   = "Адрес: укажите улицу (например, «Тверская»)."
	textHouse    = "Номер дома (например, «12»)."
	textBuilding = "Корпус/строение (если есть). Если нет — напишите «нет» или «пропустить»."
	textArea     = "Примерная площадь работ (в м²). Например: 45"
	textAreaBad  = "Пожалуйста, укажите площадь числом, например: 45"
	textPhone    = "Контактный номер телефона (можно отправить контакт кнопкой):"
	textPhoneBad = "Похоже, номер некорректный. Отправьте ещё раз или напишите «пропустить»."
	textCallTime = "Когда удобно вам позвонить? (например, «сегодня после 18:00»)"
	textComment  = "Оставьте дополнительный комментарий (пожелания, особенности объекта). Если нечего добавить — напишите «пропустить»."
	textUseKeys  = "Пожалуйста, воспользуйтесь кнопками под заявкой: отправить, начать заново или отменить."

	textSent     = "Готово! Мы получили ваши данные. Менеджер свяжется с вами в ближайшее время 👍"
	textDegraded = "Данные собраны, но передать заявку менеджеру не удалось. Пожалуйста, попробуйте оформить заявку позже."
	textCanceled = "Анкета отменена. Если захотите начать снова — нажмите «Записаться на замер»."
)

// LeadForm — пошаговая анкета. Сессию меняет только она, по одному вводу за раз.
type LeadForm struct {
	delivery  LeadDelivery
	recipient string
}

func NewLeadForm(delivery LeadDelivery, recipient string) *LeadForm {
	return &LeadForm{delivery: delivery, recipient: recipient}
}

// Start сбрасывает сессию и спрашивает имя.
func (f *LeadForm) Start(s *Session) Reply {
	*s = Session{Step: StepName}
	return Reply{Text: textStart, RemoveKeyboard: true}
}

// Handle применяет текст или контакт к текущему шагу.
// Некорректный ввод не меняет сессию, в ответ уходит повторный вопрос.
func (f *LeadForm) Handle(s *Session, in Input) Reply {
	if in.IsContact {
		if s.Step != StepPhone {
			return Reply{}
		}
		s.Lead.Phone = contactPhone(in.ContactPhone)
		return f.advance(s, StepCallTime)
	}

	text := strings.TrimSpace(in.Text)
	switch s.Step {
	case StepName:
		if text == "" {
			return Reply{Text: textName}
		}
		s.Lead.Name = text
		return f.advance(s, StepStreet)

	case StepStreet:
		s.Lead.Street = text
		return f.advance(s, StepHouse)

	case StepHouse:
		s.Lead.House = text
		return f.advance(s, StepBuilding)

	case StepBuilding:
		// «нет»/«пропустить» сохраняем как есть, в адрес они не попадут.
		s.Lead.Building = text
		return f.advance(s, StepArea)

	case StepArea:
		area, ok := ParseArea(text)
		if !ok || area <= 0 {
			return Reply{Text: textAreaBad}
		}
		s.Lead.Area = area
		return f.advance(s, StepPhone)

	case StepPhone:
		if IsSkip(text) {
			return f.advance(s, StepCallTime)
		}
		phone := NormalizePhone(text)
		if len(phone) < minPhoneLen {
			return Reply{Text: textPhoneBad}
		}
		s.Lead.Phone = phone
		return f.advance(s, StepCallTime)

	case StepCallTime:
		s.Lead.CallTime = text
		return f.advance(s, StepComment)

	case StepComment:
		if !IsSkip(text) {
			s.Lead.Comment = text
		}
		return f.advance(s, StepConfirm)

	case StepConfirm:
		return Reply{Text: textUseKeys}
	}
	return Reply{}
}

// Decide обрабатывает кнопки предпросмотра. Вне шага Confirm ничего не делает.
func (f *LeadForm) Decide(ctx context.Context, s *Session, action string) Reply {
	if s.Step != StepConfirm {
		return Reply{}
	}
	switch action {
	case ActionConfirm:
		outcome := f.delivery.Send(ctx, f.recipient, BuildNotification(s.Lead))
		*s = Session{Step: StepIdle}
		if outcome != DeliverySent {
			return Reply{Text: textDegraded}
		}
		return Reply{Text: textSent, LeadSent: true}

	case ActionRestart:
		return f.Start(s)

	case ActionCancel:
		*s = Session{Step: StepIdle}
		return Reply{Text: textCanceled, Buttons: []Button{BookButton}}
	}
	return Reply{}
}

func (f *LeadForm) advance(s *Session, next Step) Reply {
	s.Step = next
	switch next {
	case StepStreet:
		return Reply{Text: textStreet}
	case StepHouse:
		return Reply{Text: textHouse}
	case StepBuilding:
		return Reply{Text: textBuilding}
	case StepArea:
		return Reply{Text: textArea}
	case StepPhone:
		return Reply{Text: textPhone, RequestContact: true}
	case StepCallTime:
		return Reply{Text: textCallTime, RemoveKeyboard: true}
	case StepComment:
		return Reply{Text: textComment}
	case StepConfirm:
		return Reply{Text: BuildPreview(s.Lead), Buttons: confirmButtons}
	}
	return Reply{}
}

// Telegram отдает номер контакта в международном формате, иногда без '+'.
func contactPhone(raw string) string {
	phone := NormalizePhone(raw)
	if phone != "" && !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}
	return phone
}
