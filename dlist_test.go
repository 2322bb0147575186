package dlist

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSizeAndLength(t *testing.T) {
	Convey("Given an empty list", t, func() {
		d := New[string, int](ByteLengthMeasurer{})

		Convey("Size and Length are both zero", func() {
			So(d.Size(), ShouldEqual, 0)
			So(d.Length(), ShouldEqual, 0)
		})

		Convey("lookups return not-found", func() {
			_, ok := d.GetByIndex(0)
			So(ok, ShouldBeFalse)
			_, ok = d.GetByDistance(0)
			So(ok, ShouldBeFalse)
		})

		Convey("after appending, Size and Length track elements", func() {
			d.Append("hello")
			d.Append("world!")
			So(d.Size(), ShouldEqual, 2)
			So(d.Length(), ShouldEqual, 11)
		})
	})
}

// Deleting at 0, 1, 2 in turn should remove every other element.
func TestDeleteOdd(t *testing.T) {
	Convey("Given a..f appended in order", t, func() {
		d := New[string, int](ByteLengthMeasurer{})
		for _, s := range []string{"a", "b", "c", "d", "e", "f"} {
			d.Append(s)
		}

		Convey("deleting at 0, 1, 2 in sequence leaves b, d, f", func() {
			d.Delete(0)
			d.Delete(1)
			d.Delete(2)

			item, ok := d.GetByIndex(0)
			So(ok, ShouldBeTrue)
			So(*item.Item, ShouldEqual, "b")
			So(item.Index, ShouldEqual, 0)
			So(item.OuterDistance, ShouldEqual, 0)

			item, ok = d.GetByIndex(1)
			So(ok, ShouldBeTrue)
			So(*item.Item, ShouldEqual, "d")
			So(item.Index, ShouldEqual, 1)
			So(item.OuterDistance, ShouldEqual, 1)

			item, ok = d.GetByIndex(2)
			So(ok, ShouldBeTrue)
			So(*item.Item, ShouldEqual, "f")
			So(item.Index, ShouldEqual, 2)
			So(item.OuterDistance, ShouldEqual, 2)
		})
	})
}

// Distance lookups over 0..5 weighted by value, including both ends of the
// measure range.
func TestGetByDistanceNumeric(t *testing.T) {
	Convey("Given 0..5 appended with measure=value", t, func() {
		d := New[uint32, uint64](FuncMeasurer[uint32, uint64]{
			NilFunc:     func() uint64 { return 0 },
			MeasureFunc: func(v uint32) uint64 { return uint64(v) },
		})
		for _, v := range []uint32{0, 1, 2, 3, 4, 5} {
			d.Append(v)
		}

		Convey("Length is the sum of all measures", func() {
			So(d.Length(), ShouldEqual, uint64(15))
		})

		Convey("GetByDistance(0) anchors at the ordinal-first element", func() {
			item, ok := d.GetByDistance(0)
			So(ok, ShouldBeTrue)
			So(item.Index, ShouldEqual, 0)
			So(*item.Item, ShouldEqual, uint32(0))
			So(item.OuterDistance, ShouldEqual, uint64(0))
			So(item.InnerDistance, ShouldEqual, uint64(0))
		})

		Convey("GetByDistance(1) lands on the value-1 element", func() {
			item, ok := d.GetByDistance(1)
			So(ok, ShouldBeTrue)
			So(item.Index, ShouldEqual, 1)
			So(*item.Item, ShouldEqual, uint32(1))
			So(item.OuterDistance, ShouldEqual, uint64(1))
			So(item.InnerDistance, ShouldEqual, uint64(0))
		})

		Convey("GetByDistance(7) lands inside the value-4 element", func() {
			item, ok := d.GetByDistance(7)
			So(ok, ShouldBeTrue)
			So(item.Index, ShouldEqual, 4)
			So(*item.Item, ShouldEqual, uint32(4))
			So(item.OuterDistance, ShouldEqual, uint64(6))
			So(item.InnerDistance, ShouldEqual, uint64(1))
		})

		Convey("GetByDistance(Length()) overshoots and is not found", func() {
			_, ok := d.GetByDistance(d.Length())
			So(ok, ShouldBeFalse)
		})

		Convey("GetByDistance just inside the last element's range returns it", func() {
			item, ok := d.GetByDistance(d.Length() - 1)
			So(ok, ShouldBeTrue)
			So(item.Index, ShouldEqual, 5)
			So(*item.Item, ShouldEqual, uint32(5))
			So(item.InnerDistance, ShouldEqual, uint64(4))
		})
	})
}

// Each insert at index 0 should push the earlier elements one place right.
func TestInsertAtHeadRepeatedly(t *testing.T) {
	Convey("Given successive inserts at index 0", t, func() {
		d := New[string, int](ByteLengthMeasurer{})
		d.Insert(0, "a")
		d.Insert(0, "b")
		d.Insert(0, "c")

		Convey("the list reads c, b, a", func() {
			item, ok := d.GetByIndex(0)
			So(ok, ShouldBeTrue)
			So(*item.Item, ShouldEqual, "c")

			item, _ = d.GetByIndex(1)
			So(*item.Item, ShouldEqual, "b")

			item, _ = d.GetByIndex(2)
			So(*item.Item, ShouldEqual, "a")
		})
	})
}

func TestOverRangeInsertClampsToAppend(t *testing.T) {
	Convey("Given a non-empty list", t, func() {
		d := New[string, int](ByteLengthMeasurer{})
		d.Append("x")
		d.Append("y")

		Convey("inserting far past Size() clamps to append", func() {
			d.Insert(1000, "z")
			So(d.Size(), ShouldEqual, 3)
			item, ok := d.GetByIndex(2)
			So(ok, ShouldBeTrue)
			So(*item.Item, ShouldEqual, "z")
		})
	})
}

func TestDeleteOutOfRangeIsNoop(t *testing.T) {
	Convey("Given a non-empty list", t, func() {
		d := New[string, int](ByteLengthMeasurer{})
		d.Append("x")
		d.Append("y")

		Convey("deleting an out-of-range index changes nothing", func() {
			d.Delete(5)
			So(d.Size(), ShouldEqual, 2)
			item, _ := d.GetByIndex(0)
			So(*item.Item, ShouldEqual, "x")
		})

		Convey("deleting on an empty list is a no-op", func() {
			empty := New[string, int](ByteLengthMeasurer{})
			empty.Delete(0)
			So(empty.Size(), ShouldEqual, 0)
		})
	})
}

// Deleting index 0 until empty should remove elements in their original order.
func TestInsertThenDeleteAllShrinksLeftToRight(t *testing.T) {
	Convey("Given 1000 elements", t, func() {
		d := New[int, int](CountMeasurer[int]{})
		const n = 1000
		for i := 0; i < n; i++ {
			d.Append(i)
		}
		So(d.Size(), ShouldEqual, n)

		Convey("repeatedly deleting index 0 empties the list left-to-right", func() {
			for i := 0; i < n; i++ {
				item, ok := d.GetByIndex(0)
				So(ok, ShouldBeTrue)
				So(*item.Item, ShouldEqual, i)

				d.Delete(0)
				So(d.Size(), ShouldEqual, n-i-1)
				checkInvariants(d.root)
			}
			So(d.Size(), ShouldEqual, 0)
		})
	})
}

func TestInsertThenDeleteSameIndexIsNoop(t *testing.T) {
	Convey("Given a populated list", t, func() {
		d := New[string, int](ByteLengthMeasurer{})
		for _, s := range []string{"a", "b", "c", "d"} {
			d.Append(s)
		}
		before := snapshot(d)

		Convey("insert then delete at the same index restores the sequence", func() {
			d.Insert(2, "xyz")
			d.Delete(2)
			So(snapshot(d), ShouldResemble, before)
		})
	})
}

func TestAppendThenGetLastIndex(t *testing.T) {
	Convey("Given a list with elements already in it", t, func() {
		d := New[string, int](ByteLengthMeasurer{})
		d.Append("one")
		d.Append("two")

		Convey("Append then GetByIndex(Size()-1) returns the appended element", func() {
			d.Append("three")
			item, ok := d.GetByIndex(d.Size() - 1)
			So(ok, ShouldBeTrue)
			So(*item.Item, ShouldEqual, "three")
		})
	})
}

func snapshot[V any, M Measure](d *DList[V, M]) []V {
	out := make([]V, 0, d.Size())
	for i := 0; i < d.Size(); i++ {
		item, _ := d.GetByIndex(i)
		out = append(out, *item.Item)
	}
	return out
}
