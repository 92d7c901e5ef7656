package models

// Option is the tag of one of a question's answer slots.
type Option string

const (
	OptionA Option = "A"
	OptionB Option = "B"
	OptionC Option = "C"
	OptionD Option = "D"
)

// AllOptions lists the option tags in slot order.
var AllOptions = [4]Option{OptionA, OptionB, OptionC, OptionD}

func (o Option) Valid() bool {
	switch o {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// Index returns the fixed slot position of the tag (A=0 .. D=3), or -1
// for an invalid tag.
func (o Option) Index() int {
	switch o {
	case OptionA:
		return 0
	case OptionB:
		return 1
	case OptionC:
		return 2
	case OptionD:
		return 3
	}
	return -1
}
