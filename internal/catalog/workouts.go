package catalog

var workouts = map[string]Workout{
	"A": {
		Key:   "A",
		Name:  "Full Body A",
		Focus: "Squat Pattern",
		Exercises: []Exercise{
			{Name: "Squats", Sets: 3, RepRange: "6-10", Note: "Machine/smith/barbell all fine", Bodyweight: boolPtr(false)},
			{
				Name:     "Push-ups/DB Bench",
				Sets:     3,
				RepRange: "8-12",
				Options: []Option{
					{Name: "Push-ups", RepRange: "AMRAP"},
					{Name: "DB Bench"},
				},
				Superset: "EZ Bar Curls",
			},
			{Name: "EZ Bar Curls", Sets: 3, RepRange: "8-12", IsSuperset: true, Bodyweight: boolPtr(false)},
			{Name: "Bulgarian Split Squats", Sets: 3, RepRange: "8-12", Note: "Each leg", Superset: "Calf Raises", Bodyweight: boolPtr(false)},
			{Name: "Calf Raises", Sets: 3, RepRange: "10-15", IsSuperset: true, Bodyweight: boolPtr(false)},
			{Name: "Abs", Sets: 3, RepRange: "12-15", Note: "Machine/crunches/your choice", Bodyweight: boolPtr(true)},
		},
	},
	"B": {
		Key:   "B",
		Name:  "Full Body B",
		Focus: "Hip Hinge / Deadlift",
		Exercises: []Exercise{
			{Name: "RDLs", Sets: 3, RepRange: "8-12", Bodyweight: boolPtr(false)},
			{
				Name:     "Lat Pulldowns/Assisted Pullups",
				Sets:     3,
				RepRange: "10-15",
				Options: []Option{
					{Name: "Lat Pulldowns"},
					{Name: "Assisted Pullups", RepRange: "6-10"},
				},
				Superset: "Lateral Raises",
			},
			{Name: "Lateral Raises", Sets: 3, RepRange: "12-15", IsSuperset: true, Bodyweight: boolPtr(false)},
			{Name: "Hip Thrusts", Sets: 3, RepRange: "12-15", Superset: "Triceps Pushdowns", Bodyweight: boolPtr(false)},
			{Name: "Triceps Pushdowns", Sets: 3, RepRange: "10-15", IsSuperset: true, Bodyweight: boolPtr(false)},
			{Name: "Calf Raises", Sets: 3, RepRange: "10-15", Bodyweight: boolPtr(false)},
		},
	},
	"C": {
		Key:   "C",
		Name:  "Full Body C",
		Focus: "Leg Press / Machine",
		Exercises: []Exercise{
			{Name: "Leg Press", Sets: 3, RepRange: "8-12", Bodyweight: boolPtr(false)},
			{Name: "DB OHP", Sets: 3, RepRange: "6-10", Superset: "Machine Row", Bodyweight: boolPtr(false)},
			{Name: "Machine Row", Sets: 3, RepRange: "8-12", IsSuperset: true, Bodyweight: boolPtr(false)},
			{
				Name:     "DB Bench/Push-ups",
				Sets:     3,
				RepRange: "8-12",
				Options: []Option{
					{Name: "DB Bench"},
					{Name: "Push-ups", RepRange: "AMRAP"},
				},
				Superset: "Back Extensions",
			},
			{Name: "Back Extensions", Sets: 3, RepRange: "12-15", Note: "Glute-focused", IsSuperset: true, Bodyweight: boolPtr(true)},
			{Name: "Calf Raises", Sets: 3, RepRange: "10-15", Bodyweight: boolPtr(false)},
			{Name: "Plank", Sets: 2, RepRange: "failure", Note: "Hold as long as form allows", Bodyweight: boolPtr(true), Stopwatch: true},
		},
	},
}
