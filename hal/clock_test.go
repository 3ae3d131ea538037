package hal

import "testing"

func TestClockTreeValidateRejectsWrongFrequency(t *testing.T) {
	c := ClockTree{SystemClockHz: 300_000_000}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for non-315MHz clock")
	}
}

func TestClockTreeValidateAccepts315MHz(t *testing.T) {
	c := ClockTree{SystemClockHz: requiredSystemClockHz}
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSampleRateIsExactlyFourTimesColorSubcarrier(t *testing.T) {
	c := ClockTree{SystemClockHz: requiredSystemClockHz}
	const colorSubcarrierHz = 3579545.4545454545
	got := c.SampleRateHz()
	want := colorSubcarrierHz * 4
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	if diff > 1 {
		t.Errorf("SampleRateHz() = %f, want %f (within 1Hz)", got, want)
	}
}
