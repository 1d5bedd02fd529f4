package outcome_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/vssouza/rankings-core/internal/domain/outcome"
)

func TestMatchOutcomeValidate(t *testing.T) {
	Convey("Given a well-formed win record", t, func() {
		rec := outcome.MatchOutcome{
			Round: 1, CompetitorID: "ada", OpponentID: "bob",
			Result: outcome.Win, GameWins: 2, GameLosses: 1,
		}

		Convey("Then it should validate", func() {
			So(rec.Validate(), ShouldBeNil)
		})

		Convey("When the competitor id is missing", func() {
			rec.CompetitorID = ""
			So(rec.Validate(), ShouldWrap, outcome.ErrMalformedOutcome)
		})

		Convey("When the round is zero", func() {
			rec.Round = 0
			So(rec.Validate(), ShouldWrap, outcome.ErrMalformedOutcome)
		})

		Convey("When the result is unknown", func() {
			rec.Result = "VICTORY"
			So(rec.Validate(), ShouldWrap, outcome.ErrMalformedOutcome)
		})

		Convey("When the competitor plays itself", func() {
			rec.OpponentID = "ada"
			So(rec.Validate(), ShouldWrap, outcome.ErrMalformedOutcome)
		})

		Convey("When a game tally is negative", func() {
			rec.GameLosses = -1
			So(rec.Validate(), ShouldWrap, outcome.ErrMalformedOutcome)
		})
	})

	Convey("Given a bye record", t, func() {
		rec := outcome.MatchOutcome{Round: 2, CompetitorID: "ada", Result: outcome.Bye}

		Convey("Then it should validate without an opponent", func() {
			So(rec.Validate(), ShouldBeNil)
		})

		Convey("When a bye carries an opponent", func() {
			rec.OpponentID = "bob"
			So(rec.Validate(), ShouldWrap, outcome.ErrMalformedOutcome)
		})
	})

	Convey("Given a non-bye record without an opponent", t, func() {
		rec := outcome.MatchOutcome{Round: 1, CompetitorID: "ada", Result: outcome.Loss}
		So(rec.Validate(), ShouldWrap, outcome.ErrMalformedOutcome)
	})
}

func TestResultMirror(t *testing.T) {
	Convey("Given the result enum", t, func() {
		Convey("Then every result mirrors to its counterpart", func() {
			So(outcome.Win.Mirror(), ShouldEqual, outcome.Loss)
			So(outcome.Loss.Mirror(), ShouldEqual, outcome.Win)
			So(outcome.Draw.Mirror(), ShouldEqual, outcome.Draw)
			So(outcome.ForfeitWin.Mirror(), ShouldEqual, outcome.ForfeitLoss)
			So(outcome.ForfeitLoss.Mirror(), ShouldEqual, outcome.ForfeitWin)
			So(outcome.Bye.Mirror(), ShouldEqual, outcome.Bye)
		})
	})
}

func TestLedgerBuild(t *testing.T) {
	Convey("Given a mirrored pair of records", t, func() {
		records := []outcome.MatchOutcome{
			{Round: 1, CompetitorID: "ada", OpponentID: "bob", Result: outcome.Win, GameWins: 2, GameLosses: 1},
			{Round: 1, CompetitorID: "bob", OpponentID: "ada", Result: outcome.Loss, GameWins: 1, GameLosses: 2},
		}

		Convey("When the ledger is built", func() {
			ledger, err := outcome.Build(records)

			Convey("Then both competitors carry one round each", func() {
				So(err, ShouldBeNil)
				So(ledger.Len(), ShouldEqual, 2)
				So(ledger.Competitors(), ShouldResemble, []string{"ada", "bob"})

				h, ok := ledger.History("ada")
				So(ok, ShouldBeTrue)
				So(h.Rounds, ShouldHaveLength, 1)
				So(h.Faced("bob"), ShouldBeTrue)
				So(h.Faced("cyd"), ShouldBeFalse)
				So(h.ReceivedBye, ShouldBeFalse)
			})
		})

		Convey("When the same pair is reported twice", func() {
			ledger, err := outcome.Build(append(records, records...))

			Convey("Then the duplicate is dropped, not double counted", func() {
				So(err, ShouldBeNil)
				h, _ := ledger.History("ada")
				So(h.Rounds, ShouldHaveLength, 1)
			})
		})

		Convey("When a re-report disagrees with the original", func() {
			conflicting := append(records, outcome.MatchOutcome{
				Round: 1, CompetitorID: "ada", OpponentID: "bob", Result: outcome.Loss, GameWins: 1, GameLosses: 2,
			})
			_, err := outcome.Build(conflicting)

			So(err, ShouldWrap, outcome.ErrConflictingRecord)
		})
	})

	Convey("Given a one-sided report", t, func() {
		records := []outcome.MatchOutcome{
			{Round: 1, CompetitorID: "ada", OpponentID: "bob", Result: outcome.Win, GameWins: 2},
		}

		Convey("When built in strict mode", func() {
			_, err := outcome.Build(records)
			So(err, ShouldWrap, outcome.ErrMissingMirror)
		})

		Convey("When built with single-sided ingestion", func() {
			ledger, err := outcome.Build(records, outcome.WithSingleSided(true))

			Convey("Then the opposite side is synthesized", func() {
				So(err, ShouldBeNil)
				h, ok := ledger.History("bob")
				So(ok, ShouldBeTrue)
				So(h.Rounds, ShouldHaveLength, 1)
				So(h.Rounds[0].Result, ShouldEqual, outcome.Loss)
				So(h.Rounds[0].GameLosses, ShouldEqual, 2)
			})
		})
	})

	Convey("Given two sides that disagree about who they played", t, func() {
		records := []outcome.MatchOutcome{
			{Round: 1, CompetitorID: "ada", OpponentID: "bob", Result: outcome.Win},
			{Round: 1, CompetitorID: "bob", OpponentID: "cyd", Result: outcome.Win},
			{Round: 1, CompetitorID: "cyd", OpponentID: "bob", Result: outcome.Loss},
		}
		_, err := outcome.Build(records, outcome.WithSingleSided(true))

		Convey("Then the build is rejected even in lenient mode", func() {
			So(err, ShouldWrap, outcome.ErrConflictingRecord)
		})
	})

	Convey("Given two sides that disagree about the result", t, func() {
		records := []outcome.MatchOutcome{
			{Round: 1, CompetitorID: "ada", OpponentID: "bob", Result: outcome.Win},
			{Round: 1, CompetitorID: "bob", OpponentID: "ada", Result: outcome.Win},
		}

		Convey("When built in strict mode", func() {
			_, err := outcome.Build(records)
			So(err, ShouldWrap, outcome.ErrConflictingRecord)
		})

		Convey("When built in lenient mode", func() {
			ledger, err := outcome.Build(records, outcome.WithSingleSided(true))

			Convey("Then each side's own report stands", func() {
				So(err, ShouldBeNil)
				So(ledger.Len(), ShouldEqual, 2)
			})
		})
	})

	Convey("Given a double-loss pairing", t, func() {
		records := []outcome.MatchOutcome{
			{Round: 1, CompetitorID: "ada", OpponentID: "bob", Result: outcome.Loss},
			{Round: 1, CompetitorID: "bob", OpponentID: "ada", Result: outcome.Loss},
		}
		ledger, err := outcome.Build(records)

		Convey("Then it is accepted in strict mode", func() {
			So(err, ShouldBeNil)
			So(ledger.Len(), ShouldEqual, 2)
		})
	})

	Convey("Given records reported out of round order", t, func() {
		records := []outcome.MatchOutcome{
			{Round: 2, CompetitorID: "ada", OpponentID: "cyd", Result: outcome.Win},
			{Round: 2, CompetitorID: "cyd", OpponentID: "ada", Result: outcome.Loss},
			{Round: 1, CompetitorID: "ada", Result: outcome.Bye},
			{Round: 1, CompetitorID: "cyd", OpponentID: "bob", Result: outcome.Win},
			{Round: 1, CompetitorID: "bob", OpponentID: "cyd", Result: outcome.Loss},
		}
		ledger, err := outcome.Build(records)

		Convey("Then histories come back sorted by round", func() {
			So(err, ShouldBeNil)
			h, _ := ledger.History("ada")
			So(h.Rounds[0].Round, ShouldEqual, 1)
			So(h.Rounds[1].Round, ShouldEqual, 2)
			So(h.ReceivedBye, ShouldBeTrue)
			So(h.Opponents, ShouldResemble, []string{"cyd"})
		})
	})

	Convey("Given a structurally invalid record in the batch", t, func() {
		records := []outcome.MatchOutcome{
			{Round: 1, CompetitorID: "ada", OpponentID: "bob", Result: outcome.Win},
			{Round: 0, CompetitorID: "bob", OpponentID: "ada", Result: outcome.Loss},
		}
		_, err := outcome.Build(records)

		Convey("Then the whole batch is rejected", func() {
			So(err, ShouldWrap, outcome.ErrMalformedOutcome)
		})
	})
}
