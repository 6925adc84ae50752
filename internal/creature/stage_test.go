package creature

import "testing"

func TestStageForBoundaries(t *testing.T) {
	cases := []struct {
		streak int
		want   Stage
	}{
		{0, StageEgg},
		{1, StageNewborn},
		{5, StageNewborn},
		{6, StageNewborn},
		{7, StageBaby},
		{21, StageBaby},
		{22, StageChild},
		{44, StageChild},
		{45, StageTeen},
		{79, StageTeen},
		{80, StageAdult},
		{149, StageAdult},
		{150, StageMaster},
		{299, StageMaster},
		{300, StageEternal},
		{5000, StageEternal},
	}
	for _, c := range cases {
		if got := StageFor(c.streak).Key; got != c.want {
			t.Fatalf("StageFor(%d)=%s, want %s", c.streak, got, c.want)
		}
	}
}

func TestStageForNegativeFallsBackToEgg(t *testing.T) {
	if got := StageFor(-1).Key; got != StageEgg {
		t.Fatalf("StageFor(-1)=%s, want egg", got)
	}
}

func TestStageTableIsContiguous(t *testing.T) {
	all := Stages()
	if all[0].MinStreak != 0 {
		t.Fatalf("first range starts at %d, want 0", all[0].MinStreak)
	}
	for i := 1; i < len(all); i++ {
		prev := all[i-1]
		if prev.MaxStreak == Unbounded {
			t.Fatalf("unbounded range %s is not last", prev.Key)
		}
		if all[i].MinStreak != prev.MaxStreak+1 {
			t.Fatalf("gap between %s and %s: %d then %d", prev.Key, all[i].Key, prev.MaxStreak, all[i].MinStreak)
		}
		if all[i].Order != prev.Order+1 {
			t.Fatalf("orders not ascending at %s", all[i].Key)
		}
	}
	if all[len(all)-1].MaxStreak != Unbounded {
		t.Fatalf("final range must be unbounded")
	}
}

func TestStageDefinitionFallback(t *testing.T) {
	if got := Stage("wizard").Definition().Key; got != StageEgg {
		t.Fatalf("unknown stage definition=%s, want egg", got)
	}
	if got := StageMaster.Definition().MinStreak; got != 150 {
		t.Fatalf("master min=%d, want 150", got)
	}
}
