package topcut_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/vssouza/rankings-core/internal/domain/standings"
	"github.com/vssouza/rankings-core/internal/domain/topcut"
)

func swissTable(ids ...string) []standings.Row {
	rows := make([]standings.Row, len(ids))
	for i, id := range ids {
		rows[i] = standings.Row{Rank: i + 1, CompetitorID: id}
	}
	return rows
}

func TestSeeds(t *testing.T) {
	Convey("Given a final Swiss table of eight", t, func() {
		rows := swissTable("ada", "bob", "cyd", "dee", "eli", "fay", "gus", "hal")

		Convey("When the top four are cut", func() {
			seeds, err := topcut.Seeds(rows, 4)

			Convey("Then the seeds follow the table order", func() {
				So(err, ShouldBeNil)
				So(seeds, ShouldResemble, []string{"ada", "bob", "cyd", "dee"})
			})
		})

		Convey("When the cut is smaller than two", func() {
			_, err := topcut.Seeds(rows, 1)
			So(err, ShouldWrap, topcut.ErrCutTooSmall)
		})

		Convey("When the cut exceeds the table", func() {
			_, err := topcut.Seeds(rows, 9)
			So(err, ShouldWrap, topcut.ErrCutTooLarge)
		})
	})
}

func TestMerge(t *testing.T) {
	Convey("Given a Swiss table and an elimination finish over its top four", t, func() {
		rows := swissTable("ada", "bob", "cyd", "dee", "eli", "fay")
		// bob won the cut, dee lost the final, ada and cyd fell in the
		// semifinals.
		depth := map[string]int{"bob": 3, "dee": 2, "ada": 1, "cyd": 1}

		Convey("When the finish is merged back", func() {
			merged := topcut.Merge(rows, depth)

			ids := make([]string, len(merged))
			for i, row := range merged {
				ids[i] = row.CompetitorID
			}

			Convey("Then depth decides inside the cut and Swiss order breaks ties", func() {
				So(ids, ShouldResemble, []string{"bob", "dee", "ada", "cyd", "eli", "fay"})
			})

			Convey("And ranks are reassigned 1..N", func() {
				for i, row := range merged {
					So(row.Rank, ShouldEqual, i+1)
				}
			})

			Convey("And the input table is untouched", func() {
				So(rows[0].CompetitorID, ShouldEqual, "ada")
				So(rows[0].Rank, ShouldEqual, 1)
			})
		})
	})

	Convey("Given an empty finish map", t, func() {
		rows := swissTable("ada", "bob")
		merged := topcut.Merge(rows, nil)

		Convey("Then the Swiss order stands", func() {
			So(merged[0].CompetitorID, ShouldEqual, "ada")
			So(merged[1].CompetitorID, ShouldEqual, "bob")
		})
	})
}
