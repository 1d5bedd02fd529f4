package validate_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/vssouza/rankings-core/internal/domain/outcome"
	"github.com/vssouza/rankings-core/internal/domain/swiss"
	"github.com/vssouza/rankings-core/internal/validate"
)

func TestOutcomes(t *testing.T) {
	Convey("Given a batch with one malformed record", t, func() {
		records := []outcome.MatchOutcome{
			{Round: 1, CompetitorID: "ada", OpponentID: "bob", Result: outcome.Win},
			{Round: 1, CompetitorID: "bob", OpponentID: "ada", Result: "NOPE"},
		}

		Convey("When validated", func() {
			err := validate.Outcomes(records)

			Convey("Then the error names the offending index", func() {
				So(err, ShouldWrap, outcome.ErrMalformedOutcome)
				So(err.Error(), ShouldContainSubstring, "record 1")
			})
		})
	})

	Convey("Given a clean batch", t, func() {
		records := []outcome.MatchOutcome{
			{Round: 1, CompetitorID: "ada", Result: outcome.Bye},
		}
		So(validate.Outcomes(records), ShouldBeNil)
	})
}

func TestScoringOptions(t *testing.T) {
	Convey("Given scoring option ranges", t, func() {
		Convey("Then in-range values pass", func() {
			So(validate.ScoringOptions(0.33, 0.5), ShouldBeNil)
			So(validate.ScoringOptions(0, 1), ShouldBeNil)
		})

		Convey("Then an out-of-range floor is rejected", func() {
			So(validate.ScoringOptions(1.5, 0.5), ShouldWrap, validate.ErrInvalidOption)
			So(validate.ScoringOptions(-0.1, 0.5), ShouldWrap, validate.ErrInvalidOption)
		})

		Convey("Then an out-of-range bye rate is rejected", func() {
			So(validate.ScoringOptions(0.33, 1.1), ShouldWrap, validate.ErrInvalidOption)
		})
	})
}

func TestPairingOptions(t *testing.T) {
	Convey("Given step budget values", t, func() {
		So(validate.PairingOptions(2000), ShouldBeNil)
		So(validate.PairingOptions(0), ShouldWrap, validate.ErrInvalidOption)
		So(validate.PairingOptions(-5), ShouldWrap, validate.ErrInvalidOption)
	})
}

func TestPairings(t *testing.T) {
	Convey("Given a clean pairing list with a bye", t, func() {
		pairings := []swiss.Pairing{{A: "ada", B: "bob"}, {A: "cyd", B: "dee"}}
		So(validate.Pairings(pairings, "eli"), ShouldBeNil)
	})

	Convey("Given a double-booked competitor", t, func() {
		pairings := []swiss.Pairing{{A: "ada", B: "bob"}, {A: "bob", B: "cyd"}}
		err := validate.Pairings(pairings, "")
		So(err, ShouldWrap, validate.ErrInvalidPairing)
		So(err.Error(), ShouldContainSubstring, "bob")
	})

	Convey("Given a self-pairing", t, func() {
		err := validate.Pairings([]swiss.Pairing{{A: "ada", B: "ada"}}, "")
		So(err, ShouldWrap, validate.ErrInvalidPairing)
	})

	Convey("Given an empty competitor id", t, func() {
		err := validate.Pairings([]swiss.Pairing{{A: "", B: "bob"}}, "")
		So(err, ShouldWrap, validate.ErrInvalidPairing)
	})

	Convey("Given a bye recipient who is also paired", t, func() {
		err := validate.Pairings([]swiss.Pairing{{A: "ada", B: "bob"}}, "ada")
		So(err, ShouldWrap, validate.ErrInvalidPairing)
	})
}
