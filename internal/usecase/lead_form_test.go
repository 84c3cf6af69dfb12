package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fellowfy-fy/SnapCeilingBot/internal/domain"
)

const testRecipient = "-1001234567890"

func text(s string) Input { return Input{Text: s} }

// fillToConfirm проводит новую сессию через все шаги ввода.
func fillToConfirm(t *testing.T, f *LeadForm) *Session {
	t.Helper()
	s := &Session{}
	f.Start(s)
	for _, in := range []string{"Иван", "Тверская", "12", "нет", "45", "пропустить", "после 18", "пропустить"} {
		f.Handle(s, text(in))
	}
	require.Equal(t, StepConfirm, s.Step)
	return s
}

func TestLeadFormAdvancesInOrder(t *testing.T) {
	f := NewLeadForm(&fakeDelivery{}, testRecipient)
	s := &Session{Step: StepArea, Lead: domain.Lead{Name: "old"}}

	reply := f.Start(s)
	assert.Equal(t, StepName, s.Step)
	assert.Equal(t, domain.Lead{}, s.Lead)
	assert.True(t, reply.RemoveKeyboard)

	inputs := []string{"Иван", "Тверская", "12", "2", "45", "+7 999 123-45-67", "после 18", "позвонить заранее"}
	for i, in := range inputs {
		f.Handle(s, text(in))
		assert.Equal(t, FormSteps[i+1], s.Step, "after input %d (%q)", i+1, in)
	}

	assert.Equal(t, domain.Lead{
		Name:     "Иван",
		Street:   "Тверская",
		House:    "12",
		Building: "2",
		Area:     45,
		Phone:    "+79991234567",
		CallTime: "после 18",
		Comment:  "позвонить заранее",
	}, s.Lead)
}

func TestLeadFormPrompts(t *testing.T) {
	f := NewLeadForm(&fakeDelivery{}, testRecipient)
	s := &Session{}
	f.Start(s)

	assert.Equal(t, textStreet, f.Handle(s, text("Иван")).Text)
	assert.Equal(t, textHouse, f.Handle(s, text("Тверская")).Text)
	assert.Equal(t, textBuilding, f.Handle(s, text("12")).Text)
	assert.Equal(t, textArea, f.Handle(s, text("нет")).Text)

	phone := f.Handle(s, text("45"))
	assert.Equal(t, textPhone, phone.Text)
	assert.True(t, phone.RequestContact)

	callTime := f.Handle(s, text("пропустить"))
	assert.Equal(t, textCallTime, callTime.Text)
	assert.True(t, callTime.RemoveKeyboard)

	assert.Equal(t, textComment, f.Handle(s, text("после 18")).Text)

	preview := f.Handle(s, text("пропустить"))
	assert.Equal(t, BuildPreview(s.Lead), preview.Text)
	require.Len(t, preview.Buttons, 3)
	assert.Equal(t, ActionConfirm, preview.Buttons[0].Action)
	assert.Equal(t, ActionRestart, preview.Buttons[1].Action)
	assert.Equal(t, ActionCancel, preview.Buttons[2].Action)
}

func TestLeadFormRejectsBadArea(t *testing.T) {
	f := NewLeadForm(&fakeDelivery{}, testRecipient)
	for _, in := range []string{"abc", "-5", "0", "", "nan"} {
		t.Run(in, func(t *testing.T) {
			s := &Session{Step: StepArea, Lead: domain.Lead{Name: "Иван", Street: "Тверская", House: "12", Building: "нет"}}
			before := *s

			reply := f.Handle(s, text(in))
			assert.Equal(t, textAreaBad, reply.Text)
			assert.Equal(t, before, *s)
		})
	}
}

func TestLeadFormAcceptsAreaWithUnits(t *testing.T) {
	f := NewLeadForm(&fakeDelivery{}, testRecipient)
	s := &Session{Step: StepArea}
	f.Handle(s, text("45,5 кв.м"))
	assert.Equal(t, StepPhone, s.Step)
	assert.Equal(t, 45.5, s.Lead.Area)
}

func TestLeadFormEmptyNameReprompts(t *testing.T) {
	f := NewLeadForm(&fakeDelivery{}, testRecipient)
	s := &Session{}
	f.Start(s)

	reply := f.Handle(s, text("   "))
	assert.Equal(t, textName, reply.Text)
	assert.Equal(t, StepName, s.Step)
	assert.Empty(t, s.Lead.Name)
}

func TestLeadFormPhone(t *testing.T) {
	tests := []struct {
		name      string
		in        Input
		wantStep  Step
		wantPhone string
		wantText  string
	}{
		{name: "domestic", in: text("8 999 123-45-67"), wantStep: StepCallTime, wantPhone: "+79991234567", wantText: textCallTime},
		{name: "international", in: text("+7 (999) 123-45-67"), wantStep: StepCallTime, wantPhone: "+79991234567", wantText: textCallTime},
		{name: "skip", in: text("Пропустить"), wantStep: StepCallTime, wantText: textCallTime},
		{name: "too short", in: text("12-34"), wantStep: StepPhone, wantText: textPhoneBad},
		{name: "no digits", in: text("не скажу"), wantStep: StepPhone, wantText: textPhoneBad},
		{name: "contact without plus", in: Input{IsContact: true, ContactPhone: "79991234567"}, wantStep: StepCallTime, wantPhone: "+79991234567", wantText: textCallTime},
		{name: "contact with plus", in: Input{IsContact: true, ContactPhone: "+79991234567"}, wantStep: StepCallTime, wantPhone: "+79991234567", wantText: textCallTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewLeadForm(&fakeDelivery{}, testRecipient)
			s := &Session{Step: StepPhone, Lead: domain.Lead{Area: 45}}

			reply := f.Handle(s, tt.in)
			assert.Equal(t, tt.wantStep, s.Step)
			assert.Equal(t, tt.wantPhone, s.Lead.Phone)
			assert.Equal(t, tt.wantText, reply.Text)
		})
	}
}

func TestLeadFormIgnoresContactOutsidePhoneStep(t *testing.T) {
	f := NewLeadForm(&fakeDelivery{}, testRecipient)
	s := &Session{Step: StepStreet, Lead: domain.Lead{Name: "Иван"}}

	reply := f.Handle(s, Input{IsContact: true, ContactPhone: "79991234567"})
	assert.Empty(t, reply.Text)
	assert.Equal(t, StepStreet, s.Step)
	assert.Empty(t, s.Lead.Phone)
}

func TestLeadFormComment(t *testing.T) {
	f := NewLeadForm(&fakeDelivery{}, testRecipient)

	s := &Session{Step: StepComment}
	f.Handle(s, text("пропустить"))
	assert.Equal(t, StepConfirm, s.Step)
	assert.Empty(t, s.Lead.Comment)

	s = &Session{Step: StepComment}
	f.Handle(s, text("  есть люстра  "))
	assert.Equal(t, StepConfirm, s.Step)
	assert.Equal(t, "есть люстра", s.Lead.Comment)
}

func TestLeadFormTextInConfirm(t *testing.T) {
	f := NewLeadForm(&fakeDelivery{}, testRecipient)
	s := fillToConfirm(t, f)
	before := *s

	reply := f.Handle(s, text("а можно завтра?"))
	assert.Equal(t, textUseKeys, reply.Text)
	assert.Equal(t, before, *s)
}

func TestLeadFormConfirmSent(t *testing.T) {
	d := &fakeDelivery{outcome: DeliverySent}
	f := NewLeadForm(d, testRecipient)
	s := fillToConfirm(t, f)
	notification := BuildNotification(s.Lead)

	reply := f.Decide(context.Background(), s, ActionConfirm)
	assert.Equal(t, textSent, reply.Text)
	assert.True(t, reply.LeadSent)
	assert.Equal(t, StepIdle, s.Step)
	assert.Equal(t, domain.Lead{}, s.Lead)

	require.Len(t, d.calls, 1)
	assert.Equal(t, testRecipient, d.calls[0].recipient)
	assert.Equal(t, notification, d.calls[0].text)
}

func TestLeadFormConfirmDegraded(t *testing.T) {
	for _, outcome := range []DeliveryOutcome{DeliveryForbidden, DeliveryBadTarget, DeliveryUnknown} {
		t.Run(outcome.String(), func(t *testing.T) {
			d := &fakeDelivery{outcome: outcome}
			f := NewLeadForm(d, testRecipient)
			s := fillToConfirm(t, f)

			reply := f.Decide(context.Background(), s, ActionConfirm)
			assert.Equal(t, textDegraded, reply.Text)
			assert.False(t, reply.LeadSent)
			assert.Equal(t, StepIdle, s.Step)
			assert.Len(t, d.calls, 1)
		})
	}
}

func TestLeadFormRestart(t *testing.T) {
	d := &fakeDelivery{}
	f := NewLeadForm(d, testRecipient)
	s := fillToConfirm(t, f)

	reply := f.Decide(context.Background(), s, ActionRestart)
	assert.Equal(t, textStart, reply.Text)
	assert.Equal(t, Session{Step: StepName}, *s)
	assert.Empty(t, d.calls)
}

func TestLeadFormCancel(t *testing.T) {
	d := &fakeDelivery{}
	f := NewLeadForm(d, testRecipient)
	s := fillToConfirm(t, f)

	reply := f.Decide(context.Background(), s, ActionCancel)
	assert.Equal(t, textCanceled, reply.Text)
	assert.Equal(t, []Button{BookButton}, reply.Buttons)
	assert.Equal(t, StepIdle, s.Step)
	assert.Empty(t, d.calls)
}

func TestLeadFormDecideOutsideConfirm(t *testing.T) {
	d := &fakeDelivery{}
	f := NewLeadForm(d, testRecipient)
	s := &Session{Step: StepArea, Lead: domain.Lead{Name: "Иван"}}

	for _, action := range []string{ActionConfirm, ActionRestart, ActionCancel} {
		reply := f.Decide(context.Background(), s, action)
		assert.Empty(t, reply.Text)
	}
	assert.Equal(t, StepArea, s.Step)
	assert.Empty(t, d.calls)
}
