package contract

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archiwum/internal/form"
	"archiwum/internal/value"
)

func sampleContract() RepairContract {
	c := New()
	c.Date = At(time.Date(2024, 3, 5, 14, 30, 0, 0, time.Local))
	c.Info = Info{
		Customer:                   Customer{Name: "Acme", TaxNumber: "123-456", Phone: "555 100 200"},
		ExpectedRepairTimeWorkDays: 7,
		PrognosisPrice:             decimal.RequireFromString("199.99"),
		Description:                []string{"does not boot", "cracked hinge"},
		Notes:                      "urgent",
		VisibleDamages:             []string{"scratches"},
	}
	c.ClientContactEvents = []ClientContactEvent{{Date: c.Date, Note: "called"}}
	rd := NewReplacementDevice()
	rd.Device = Device{ModelName: "T480", SerialNumber: "SN1"}
	c.ReplacementDevice = &rd
	fp := NewFinalProtocol()
	fp.Date = c.Date
	fp.FinalPrice = decimal.RequireFromString("250")
	fp.PerformedRepairs = []PerformedRepair{{ID: "r1", Name: "reflow", Price: decimal.RequireFromString("150.50")}}
	fp.PartsReplaced = []ReplacementPart{{ID: "p1", Name: "hinge", Price: decimal.RequireFromString("49.5")}}
	c.FinalProtocol = &fp
	return c
}

func TestNewDefaults(t *testing.T) {
	c := New()
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.WithinDuration(t, time.Now(), c.Date.Time, 2*time.Second)
	assert.NotNil(t, c.Info.Description)
	assert.Empty(t, c.Info.Description)
	assert.Empty(t, c.ClientContactEvents)
	assert.Nil(t, c.ReplacementDevice)
	assert.Nil(t, c.FinalProtocol)
	assert.False(t, c.Info.Customer.IsCompany())

	assert.NotEqual(t, New().ID, c.ID)
	assert.NotEqual(t, uuid.Nil, NewReplacementDevice().ID)
}

func TestFormRoundTrip(t *testing.T) {
	for name, c := range map[string]RepairContract{
		"blank": New(),
		"full":  sampleContract(),
	} {
		t.Run(name, func(t *testing.T) {
			v, err := form.ToValue(c)
			require.NoError(t, err)

			back, err := form.FromValue[RepairContract](v)
			require.NoError(t, err)
			if diff := cmp.Diff(c, back); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValueShape(t *testing.T) {
	c := sampleContract()
	v, err := form.ToValue(c)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"id", "date", "info", "client_contact_events", "replacement_device", "final_protocol",
	}, v.AsObject().Keys())

	get := func(segs ...value.Segment) value.Value {
		t.Helper()
		got, ok := v.At(value.Path(segs...))
		require.True(t, ok)
		return got
	}
	assert.Equal(t, c.ID.String(), get(value.Field("id")).AsString())
	assert.Equal(t, "2024-03-05T14:30:00", get(value.Field("date")).AsString())
	assert.Equal(t, "199.99", get(value.Field("info"), value.Field("prognosis_price")).AsString())
	assert.Equal(t, 7.0, get(value.Field("info"), value.Field("expected_repair_time_work_days")).AsNumber())
	assert.Equal(t, "cracked hinge", get(value.Field("info"), value.Field("description"), value.Index(1)).AsString())

	blank, err := form.ToValue(New())
	require.NoError(t, err)
	rd, _ := blank.At(value.Path(value.Field("replacement_device")))
	assert.True(t, rd.IsNull())
}

func TestFromValueRejectsBadDate(t *testing.T) {
	v, err := form.ToValue(New())
	require.NoError(t, err)
	v, err = v.Assoc(value.Path(value.Field("date")), value.String("yesterday"))
	require.NoError(t, err)

	_, err = form.FromValue[RepairContract](v)
	var de *form.DeserializingError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "contract.RepairContract", de.TypeName)
	assert.Contains(t, de.Message, "$.date")
}

func TestWorkDaysBeyondExactRange(t *testing.T) {
	for _, days := range []int64{value.MaxExactInt + 1, math.MaxInt64} {
		c := New()
		c.Info.ExpectedRepairTimeWorkDays = days
		_, err := form.ToValue(c)
		var de *form.DeserializingError
		require.ErrorAs(t, err, &de, "%d must not be rounded", days)
		assert.Equal(t, "contract.RepairContract", de.TypeName)
		assert.Contains(t, de.Message, "$.info.expected_repair_time_work_days")
	}

	c := New()
	c.Info.ExpectedRepairTimeWorkDays = value.MaxExactInt
	v, err := form.ToValue(c)
	require.NoError(t, err)
	back, err := form.FromValue[RepairContract](v)
	require.NoError(t, err)
	assert.Equal(t, int64(value.MaxExactInt), back.Info.ExpectedRepairTimeWorkDays)

	v, err = v.Assoc(value.Path(value.Field("info"), value.Field("expected_repair_time_work_days")), value.Number(1<<53+2))
	require.NoError(t, err)
	_, err = form.FromValue[RepairContract](v)
	var de *form.DeserializingError
	require.ErrorAs(t, err, &de)
	assert.Contains(t, de.Message, "not exactly representable")
}

func TestParseTime(t *testing.T) {
	want := time.Date(2024, 3, 5, 14, 30, 1, 0, time.Local)
	for _, in := range []string{"2024-03-05T14:30:01", "2024-03-05 14:30:01"} {
		got, err := ParseTime(in)
		require.NoError(t, err, in)
		assert.True(t, got.Time.Equal(want), in)
	}
	_, err := ParseTime("05.03.2024")
	assert.Error(t, err)
}

func TestTimeText(t *testing.T) {
	tm := At(time.Date(2024, 12, 31, 23, 59, 59, 999, time.Local))
	text, err := tm.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31T23:59:59", string(text))
	assert.Equal(t, "2024-12-31 23:59:59", tm.String())

	var back Time
	require.NoError(t, back.UnmarshalText(text))
	assert.True(t, back.Equal(tm))
}

func TestFinalProtocolTotal(t *testing.T) {
	fp := sampleContract().FinalProtocol
	assert.True(t, decimal.RequireFromString("200").Equal(fp.Total()), fp.Total().String())
	assert.True(t, NewFinalProtocol().Total().IsZero())
}

func TestCustomerKind(t *testing.T) {
	assert.True(t, Customer{Name: "Acme", TaxNumber: "1"}.IsCompany())
	assert.False(t, Customer{Name: "Jan"}.IsCompany())
}

func TestNewElement(t *testing.T) {
	for _, field := range []string{
		"description", "visible_damages", "client_contact_events",
		"performed_repairs", "parts_replaced", "replacement_device", "final_protocol",
	} {
		elem, ok := NewElement(field)
		assert.True(t, ok, field)
		assert.NotNil(t, elem, field)
	}

	rd, _ := NewElement("replacement_device")
	assert.NotEqual(t, uuid.Nil, rd.(ReplacementDevice).ID)

	_, ok := NewElement("notes")
	assert.False(t, ok)
}
