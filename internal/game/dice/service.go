package dice

// sourceService adapts a Source into the full Service contract.
type sourceService struct {
	src Source
}

// NewCryptoService returns the production Service, backed by crypto/rand.
// Results are not reproducible across runs.
func NewCryptoService() Service {
	return NewSourceService(NewCryptoSource())
}

// NewSourceService wraps an arbitrary Source as a Service.
//
// Precondition: src must be non-nil.
func NewSourceService(src Source) Service {
	if src == nil {
		panic("dice: NewSourceService called with nil src")
	}
	return &sourceService{src: src}
}

// Roll parses expr and rolls it against the underlying Source.
//
// Postcondition: len(result.Dice) == parsed Count;
// result.Total() == sum(result.Dice) + result.Modifier.
func (s *sourceService) Roll(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	rolled := make([]int, e.Count)
	for i := range rolled {
		rolled[i] = s.src.Intn(e.Sides) + 1
	}
	return RollResult{Expression: e.Raw, Dice: rolled, Modifier: e.Modifier}, nil
}

// D20 returns a single unmodified d20 result.
//
// Postcondition: result is in [1, 20].
func (s *sourceService) D20() int {
	return s.src.Intn(20) + 1
}

// Intn returns an int in [0, n).
//
// Precondition: n > 0.
func (s *sourceService) Intn(n int) int {
	return s.src.Intn(n)
}
