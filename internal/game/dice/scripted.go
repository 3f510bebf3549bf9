package dice

import "fmt"

// Scripted is a Service that replays a pre-supplied sequence of integers,
// cycling when the sequence is exhausted. Scripted values are interpreted as
// literal die faces: Roll consumes one value per die, D20 consumes one value,
// and Intn consumes one value reduced modulo n. Replaying the same sequence
// always produces the same encounter trajectory.
//
// Scripted is not safe for concurrent use; the engine is single-threaded by
// contract so this matches its access pattern.
type Scripted struct {
	values []int
	pos    int
}

// NewScripted creates a Scripted service replaying values.
//
// Precondition: values must be non-empty.
// Postcondition: Returns a ready Scripted, or an error for an empty sequence.
func NewScripted(values ...int) (*Scripted, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("dice: scripted sequence must not be empty")
	}
	cp := make([]int, len(values))
	copy(cp, values)
	return &Scripted{values: cp}, nil
}

// next returns the next scripted value, cycling when exhausted.
func (s *Scripted) next() int {
	v := s.values[s.pos]
	s.pos = (s.pos + 1) % len(s.values)
	return v
}

// Roll evaluates expr, consuming one scripted value per die.
//
// Postcondition: result.Total() == sum of the consumed values + modifier.
func (s *Scripted) Roll(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	rolled := make([]int, e.Count)
	for i := range rolled {
		rolled[i] = s.next()
	}
	return RollResult{Expression: e.Raw, Dice: rolled, Modifier: e.Modifier}, nil
}

// D20 returns the next scripted value unchanged.
func (s *Scripted) D20() int {
	return s.next()
}

// Intn returns the next scripted value reduced modulo n.
//
// Precondition: n > 0; scripted values must be non-negative.
func (s *Scripted) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	return s.next() % n
}
