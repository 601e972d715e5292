package salary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"furnipay/internal/salary"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int64) *int64     { return &v }

func TestBonus(t *testing.T) {
	type testCase struct {
		name         string
		price        int64
		materialCost int64
		fixedBonus   *int64
		worker       *salary.WorkerSettings
		want         int64
	}

	tests := []testCase{
		{
			name:       "FixedBonusOverrideWins",
			price:      100_000_00,
			fixedBonus: ptrI(15_000_00),
			worker:     &salary.WorkerSettings{Mode: salary.ModeSalesPercent, Rate: 10},
			want:       15_000_00,
		},
		{
			name:   "SalesPercent",
			price:  100_000_00,
			worker: &salary.WorkerSettings{Mode: salary.ModeSalesPercent, Rate: 10},
			want:   10_000_00,
		},
		{
			name:         "MaterialsPercent",
			price:        100_000_00,
			materialCost: 50_000_00,
			worker:       &salary.WorkerSettings{Mode: salary.ModeMaterialsPercent, Rate: 10},
			want:         5_000_00,
		},
		{
			name:   "MaterialsPercentZeroCost",
			price:  100_000_00,
			worker: &salary.WorkerSettings{Mode: salary.ModeMaterialsPercent, Rate: 10},
			want:   0,
		},
		{
			name:   "FixedAmountRateIsAbsolute",
			price:  100_000_00,
			worker: &salary.WorkerSettings{Mode: salary.ModeFixedAmount, Rate: 1500_00},
			want:   1500_00,
		},
		{
			name:  "NoWorkerLegacyFivePercent",
			price: 100_000_00,
			want:  5_000_00,
		},
		{
			name:   "UnknownModeFallsBack",
			price:  100_000_00,
			worker: &salary.WorkerSettings{Mode: "hourly", Rate: 10},
			want:   5_000_00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := salary.Bonus(tt.price, tt.materialCost, tt.fixedBonus, tt.worker)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStageSplit(t *testing.T) {
	type testCase struct {
		name        string
		bonus       int64
		orderAdv    *float64
		orderFin    *float64
		workerAdv   *float64
		workerFin   *float64
		wantAdvance int64
		wantFinal   int64
	}

	tests := []testCase{
		{
			name:        "DefaultFiftyFifty",
			bonus:       10_000_00,
			wantAdvance: 5_000_00,
			wantFinal:   5_000_00,
		},
		{
			name:        "WorkerDefaults",
			bonus:       10_000_00,
			workerAdv:   ptrF(60),
			workerFin:   ptrF(40),
			wantAdvance: 6_000_00,
			wantFinal:   4_000_00,
		},
		{
			name:        "WorkerFinalMissingDefaultsToFifty",
			bonus:       10_000_00,
			workerAdv:   ptrF(60),
			wantAdvance: 6_000_00,
			wantFinal:   5_000_00,
		},
		{
			name:        "OrderOverrideBeatsWorker",
			bonus:       10_000_00,
			orderAdv:    ptrF(100),
			orderFin:    ptrF(0),
			workerAdv:   ptrF(60),
			workerFin:   ptrF(40),
			wantAdvance: 10_000_00,
			wantFinal:   0,
		},
		{
			name:        "OrderFinalMissingComplements",
			bonus:       10_000_00,
			orderAdv:    ptrF(70),
			wantAdvance: 7_000_00,
			wantFinal:   3_000_00,
		},
		{
			// Splits are allowed to exceed 100% in total; this mirrors
			// live configurations and must not be normalized.
			name:        "PercentagesNeedNotSumToHundred",
			bonus:       10_000_00,
			orderAdv:    ptrF(70),
			orderFin:    ptrF(50),
			wantAdvance: 7_000_00,
			wantFinal:   5_000_00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advance, final := salary.StageSplit(tt.bonus, tt.orderAdv, tt.orderFin, tt.workerAdv, tt.workerFin)
			assert.Equal(t, tt.wantAdvance, advance)
			assert.Equal(t, tt.wantFinal, final)
		})
	}
}
