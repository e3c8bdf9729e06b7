package ranking

import (
	"fmt"

	"github.com/fbaudier/interclubs/internal/tennis"
)

// Ladder is the totally ordered list of ranking labels. Position 1 is the
// strongest label. Immutable once built; every player ranking references a
// valid position.
type Ladder struct {
	labels          []string
	positions       map[string]int
	ncPos           int
	secondSeriesPos int
}

// NewLadder builds a ladder from an ordered label list, strongest first. The
// "NC" and "-15" labels are required anchors of the strength model.
func NewLadder(labels []string) (*Ladder, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("empty ranking ladder")
	}
	positions := make(map[string]int, len(labels))
	for i, label := range labels {
		if _, ok := positions[label]; ok {
			return nil, fmt.Errorf("duplicate ranking label %q", label)
		}
		positions[label] = i + 1
	}
	ncPos, ok := positions["NC"]
	if !ok {
		return nil, fmt.Errorf("ranking ladder is missing the NC label")
	}
	secondSeriesPos, ok := positions["-15"]
	if !ok {
		return nil, fmt.Errorf("ranking ladder is missing the -15 label")
	}
	return &Ladder{
		labels:          labels,
		positions:       positions,
		ncPos:           ncPos,
		secondSeriesPos: secondSeriesPos,
	}, nil
}

// DefaultLadder is the full FFT ladder: the interleaved N/T first series,
// then the second, third and fourth series, then ND for unranked players.
func DefaultLadder() *Ladder {
	labels := make([]string, 0, 224)
	for i := 1; i <= 100; i++ {
		labels = append(labels, fmt.Sprintf("N%d", i), fmt.Sprintf("T%d", i))
	}
	labels = append(labels, "-15", "-4/6", "-2/6", "0", "1/6", "2/6", "3/6", "4/6", "5/6", "15")
	labels = append(labels, "15/1", "15/2", "15/3", "15/4", "15/5", "30")
	labels = append(labels, "30/1", "30/2", "30/3", "30/4", "30/5", "40", "NC")
	labels = append(labels, "ND")
	ladder, err := NewLadder(labels)
	if err != nil {
		panic(err)
	}
	return ladder
}

func (l *Ladder) Len() int {
	return len(l.labels)
}

// Position returns the 1-based ladder position of a label.
func (l *Ladder) Position(label string) (int, error) {
	pos, ok := l.positions[label]
	if !ok {
		return 0, fmt.Errorf("unknown ranking label %q", label)
	}
	return pos, nil
}

// Label returns the label at a 1-based ladder position.
func (l *Ladder) Label(pos int) (string, error) {
	if pos < 1 || pos > len(l.labels) {
		return "", fmt.Errorf("ranking position %d outside ladder [1,%d]", pos, len(l.labels))
	}
	return l.labels[pos-1], nil
}

// Series returns the series a ladder position belongs to. Positions past NC
// (the ND label) count as fourth series.
func (l *Ladder) Series(pos int) (tennis.Series, error) {
	if pos < 1 || pos > len(l.labels) {
		return 0, fmt.Errorf("ranking position %d outside ladder [1,%d]", pos, len(l.labels))
	}
	if pos < l.secondSeriesPos {
		return tennis.FirstSeries, nil
	}
	if thirdStart, ok := l.positions["15/1"]; ok && pos < thirdStart {
		return tennis.SecondSeries, nil
	}
	if fourthStart, ok := l.positions["30/1"]; ok && pos < fourthStart {
		return tennis.ThirdSeries, nil
	}
	return tennis.FourthSeries, nil
}

// Labels returns a copy of the ordered label list, strongest first.
func (l *Ladder) Labels() []string {
	out := make([]string, len(l.labels))
	copy(out, l.labels)
	return out
}
