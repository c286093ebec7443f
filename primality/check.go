package primality

import (
	"math/big"

	"go.uber.org/zap"

	"github.com/bastionzero/textbookrsa/report"
)

// A Test is a named witness procedure that can be run over a batch of bases
type Test struct {
	Name    string
	witness func(a *big.Int, p *big.Int) (bool, []zap.Field)
}

var (
	FermatTest      = Test{Name: "fermat", witness: fermat}
	MillerRabinTest = Test{Name: "miller-rabin", witness: millerRabin}
)

// Holds runs the test for a single base
func (t Test) Holds(a *big.Int, p *big.Int) bool {
	ok, _ := t.witness(a, p)
	return ok
}

// Check runs the test for every base and returns the tally. Per-base detail is logged
// according to mode; the mode has no effect on the outcome
func (t Test) Check(bases []*big.Int, p *big.Int, mode report.OutputMode, logger *zap.Logger) report.Tally {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("test", t.Name), zap.Stringer("p", p))

	var tally report.Tally
	for _, a := range bases {
		ok, detail := t.witness(a, p)
		tally.Record(ok)

		if mode.Shows(ok) {
			fields := append([]zap.Field{zap.Stringer("a", a), zap.String("result", report.Verdict(ok))}, detail...)
			logger.Info("witness", fields...)
		}
	}

	logger.Info("tally", zap.Int("passed", tally.Passed), zap.Int("total", tally.Total))
	return tally
}

// CheckFermat runs the Fermat test over bases
func CheckFermat(bases []*big.Int, p *big.Int, mode report.OutputMode, logger *zap.Logger) report.Tally {
	return FermatTest.Check(bases, p, mode, logger)
}

// CheckMillerRabin runs the Miller–Rabin test over bases
func CheckMillerRabin(bases []*big.Int, p *big.Int, mode report.OutputMode, logger *zap.Logger) report.Tally {
	return MillerRabinTest.Check(bases, p, mode, logger)
}

// Bases returns the integers in [from, to)
func Bases(from int64, to int64) []*big.Int {
	if to <= from {
		return nil
	}

	bases := make([]*big.Int, 0, to-from)
	for a := from; a < to; a++ {
		bases = append(bases, big.NewInt(a))
	}
	return bases
}
