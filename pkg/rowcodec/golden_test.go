package rowcodec

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"storemy/pkg/types"
)

// TestGoldenEnvelopeLayout pins the exact byte layout BuildRow produces for
// a fixed input, catching accidental format drift (offset table width
// selection, null-map packing, signature placement).
func TestGoldenEnvelopeLayout(t *testing.T) {
	g := goldie.New(t)
	rd := testRowDef()
	buf := NewBuffer(256)
	row, err := BuildRow(buf, 0, rd, []types.Value{
		types.NewInt64Value(1234),
		types.NewStringValue("golden"),
		types.NewBoolValue(true),
		nil,
	}, false)
	if err != nil {
		t.Fatal(err)
	}
	g.Assert(t, "row_envelope", buf.Bytes()[:row.RowSize()])
}
