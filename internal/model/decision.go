package model

// Decision is the outcome of one sampling tick.
// Keep these values stable; they are intended for CSV output.
type Decision string

const (
	DecisionTransmit Decision = "TRANSMIT"
	DecisionSuppress Decision = "SUPPRESS"
)

func DecisionFromTransmitted(transmitted bool) Decision {
	if transmitted {
		return DecisionTransmit
	}
	return DecisionSuppress
}
