package usecase

// Metrics — счетчики анкеты и консультанта.
type Metrics interface {
	FormStarted()
	StepReached(step Step)
	InputRejected(step Step)
	LeadDelivered(outcome DeliveryOutcome)
	AssistantAnswered(ok bool)
}

type NopMetrics struct{}

func (NopMetrics) FormStarted()                  {}
func (NopMetrics) StepReached(Step)              {}
func (NopMetrics) InputRejected(Step)            {}
func (NopMetrics) LeadDelivered(DeliveryOutcome) {}
func (NopMetrics) AssistantAnswered(bool)        {}
