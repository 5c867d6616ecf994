package types

import "fmt"

// Summary counts what happened to the rows of one or more sources.
type Summary struct {
	Applied   int
	Failed    int
	Malformed int
}

func (s *Summary) Add(other Summary) {
	s.Applied += other.Applied
	s.Failed += other.Failed
	s.Malformed += other.Malformed
}

func (s Summary) String() string {
	return fmt.Sprintf("applied=%d failed=%d malformed=%d", s.Applied, s.Failed, s.Malformed)
}
