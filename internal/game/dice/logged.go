package dice

import "go.uber.org/zap"

// Logged wraps a Service and logs every roll at debug level with the
// expression, die values, modifier, and total.
type Logged struct {
	svc    Service
	logger *zap.Logger
}

// NewLogged creates a Logged service delegating to svc.
//
// Precondition: svc and logger must be non-nil.
func NewLogged(svc Service, logger *zap.Logger) *Logged {
	return &Logged{svc: svc, logger: logger}
}

// Roll evaluates expr via the wrapped service and logs the result.
func (l *Logged) Roll(expr string) (RollResult, error) {
	result, err := l.svc.Roll(expr)
	if err != nil {
		return RollResult{}, err
	}
	l.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result, nil
}

// D20 rolls a d20 via the wrapped service and logs the result.
func (l *Logged) D20() int {
	v := l.svc.D20()
	l.logger.Debug("d20 roll", zap.Int("result", v))
	return v
}

// Intn delegates to the wrapped service without logging; uniform picks are
// logged by the callers that give them meaning.
func (l *Logged) Intn(n int) int {
	return l.svc.Intn(n)
}
