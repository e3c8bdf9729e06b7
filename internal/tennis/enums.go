package tennis

import "fmt"

// Gender of a license holder or a competition.
type Gender int

const (
	Male Gender = iota
	Female
	Mixed
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "Masculin"
	case Female:
		return "Féminin"
	case Mixed:
		return "Mixte"
	}
	return fmt.Sprintf("Gender(%d)", int(g))
}

func (g Gender) Validate() error {
	if g < Male || g > Mixed {
		return fmt.Errorf("invalid gender: %d", int(g))
	}
	return nil
}

// DivisionType is the level a championship is played at.
type DivisionType int

const (
	National DivisionType = iota
	Prenational
	Regional
	Departmental
)

func (d DivisionType) String() string {
	switch d {
	case National:
		return "National"
	case Prenational:
		return "Prénational"
	case Regional:
		return "Régional"
	case Departmental:
		return "Départemental"
	}
	return fmt.Sprintf("DivisionType(%d)", int(d))
}

func (d DivisionType) Validate() error {
	if d < National || d > Departmental {
		return fmt.Errorf("invalid division type: %d", int(d))
	}
	return nil
}

// CategoryType groups age categories.
type CategoryType int

const (
	Youth CategoryType = iota
	Senior
	Veteran
)

func (c CategoryType) String() string {
	switch c {
	case Youth:
		return "Jeunes"
	case Senior:
		return "Seniors"
	case Veteran:
		return "Seniors Plus"
	}
	return fmt.Sprintf("CategoryType(%d)", int(c))
}

func (c CategoryType) Validate() error {
	if c < Youth || c > Veteran {
		return fmt.Errorf("invalid category type: %d", int(c))
	}
	return nil
}

// Series is the FFT ranking series a ladder label belongs to.
type Series int

const (
	FirstSeries Series = iota + 1
	SecondSeries
	ThirdSeries
	FourthSeries
)

func (s Series) Validate() error {
	if s < FirstSeries || s > FourthSeries {
		return fmt.Errorf("invalid series: %d", int(s))
	}
	return nil
}

// InjuryType distinguishes acute from chronic injuries.
type InjuryType int

const (
	AcuteInjury InjuryType = iota
	ChronicInjury
)

func (i InjuryType) Validate() error {
	if i < AcuteInjury || i > ChronicInjury {
		return fmt.Errorf("invalid injury type: %d", int(i))
	}
	return nil
}
