package workouts

// DefaultPlans is the built-in weekly catalog, used to seed the
// persistence boundary on the very first access
func DefaultPlans() []WorkoutPlan {
	return []WorkoutPlan{
		{
			Day:      1,
			Name:     "Upper Body",
			Category: CategoryStrength,
			Exercises: []Exercise{
				{Name: "Push-ups", Sets: 3, Reps: "10-15", Calories: 50, Notes: "Focus on proper form"},
				{Name: "Pull-ups", Sets: 3, Reps: "8-12", Calories: 60, Notes: "Use assistance if needed"},
				{Name: "Bench Press", Sets: 4, Reps: "8-10", Calories: 80, Notes: "Warm up first"},
				{Name: "Shoulder Press", Sets: 3, Reps: "10-12", Calories: 70, Notes: "Keep core engaged"},
				{Name: "Bicep Curls", Sets: 3, Reps: "12-15", Calories: 40, Notes: "Control the movement"},
				{Name: "Tricep Dips", Sets: 3, Reps: "10-12", Calories: 45, Notes: "Use bench or chair"},
			},
		},
		{
			Day:      2,
			Name:     "Lower Body",
			Category: CategoryStrength,
			Exercises: []Exercise{
				{Name: "Squats", Sets: 4, Reps: "12-15", Calories: 100, Notes: "Keep knees behind toes"},
				{Name: "Lunges", Sets: 3, Reps: "12 each leg", Calories: 80, Notes: "Alternate legs"},
				{Name: "Deadlifts", Sets: 4, Reps: "8-10", Calories: 120, Notes: "Maintain straight back"},
				{Name: "Leg Press", Sets: 3, Reps: "12-15", Calories: 90, Notes: "Full range of motion"},
				{Name: "Calf Raises", Sets: 3, Reps: "15-20", Calories: 40, Notes: "Slow and controlled"},
				{Name: "Leg Curls", Sets: 3, Reps: "12-15", Calories: 60, Notes: "Focus on hamstrings"},
			},
		},
		{
			Day:      3,
			Name:     "Cardio",
			Category: CategoryCardio,
			Exercises: []Exercise{
				{Name: "Running", Sets: 1, Duration: "30 minutes", Calories: 300, Notes: "Moderate pace"},
				{Name: "Cycling", Sets: 1, Duration: "45 minutes", Calories: 350, Notes: "Outdoor or stationary"},
				{Name: "HIIT Training", Sets: 1, Duration: "20 minutes", Calories: 250, Notes: "High intensity intervals"},
				{Name: "Jump Rope", Sets: 5, Duration: "2 minutes each", Calories: 200, Notes: "Rest 30 sec between sets"},
				{Name: "Burpees", Sets: 3, Reps: "10-15", Calories: 150, Notes: "Full body exercise"},
			},
		},
		{
			Day:      4,
			Name:     "Core",
			Category: CategoryCore,
			Exercises: []Exercise{
				{Name: "Planks", Sets: 3, Duration: "60 seconds", Calories: 30, Notes: "Hold proper form"},
				{Name: "Crunches", Sets: 3, Reps: "20-25", Calories: 50, Notes: "Don't pull on neck"},
				{Name: "Russian Twists", Sets: 3, Reps: "20 each side", Calories: 40, Notes: "Keep back straight"},
				{Name: "Leg Raises", Sets: 3, Reps: "15-20", Calories: 45, Notes: "Control the movement"},
				{Name: "Mountain Climbers", Sets: 3, Duration: "30 seconds", Calories: 60, Notes: "Fast pace"},
				{Name: "Bicycle Crunches", Sets: 3, Reps: "20 each side", Calories: 50, Notes: "Slow and controlled"},
			},
		},
		{
			Day:      5,
			Name:     "Full Body",
			Category: CategoryStrength,
			Exercises: []Exercise{
				{Name: "Squat to Press", Sets: 3, Reps: "12-15", Calories: 80, Notes: "Combination movement"},
				{Name: "Deadlift to Row", Sets: 3, Reps: "10-12", Calories: 90, Notes: "Full body engagement"},
				{Name: "Burpees", Sets: 3, Reps: "10-12", Calories: 150, Notes: "High intensity"},
				{Name: "Mountain Climbers", Sets: 3, Duration: "45 seconds", Calories: 70, Notes: "Fast pace"},
				{Name: "Kettlebell Swings", Sets: 3, Reps: "15-20", Calories: 100, Notes: "Hip drive"},
				{Name: "Jumping Jacks", Sets: 3, Reps: "30", Calories: 60, Notes: "Warm up movement"},
			},
		},
		{
			Day:      6,
			Name:     "Flexibility/Yoga",
			Category: CategoryFlexibility,
			Exercises: []Exercise{
				{Name: "Sun Salutations", Sets: 3, Reps: "5 rounds", Calories: 50, Notes: "Flow movement"},
				{Name: "Warrior Poses", Sets: 2, Duration: "30 seconds each", Calories: 30, Notes: "Hold and breathe"},
				{Name: "Downward Dog", Sets: 3, Duration: "60 seconds", Calories: 20, Notes: "Stretch hamstrings"},
				{Name: "Child's Pose", Sets: 3, Duration: "60 seconds", Calories: 15, Notes: "Relaxation pose"},
				{Name: "Pigeon Pose", Sets: 2, Duration: "45 seconds each side", Calories: 25, Notes: "Hip opener"},
				{Name: "Seated Forward Fold", Sets: 3, Duration: "60 seconds", Calories: 20, Notes: "Hamstring stretch"},
			},
		},
		{
			Day:      7,
			Name:     "Rest Day",
			Category: CategoryRest,
			Exercises: []Exercise{
				{Name: "Light Stretching", Sets: 1, Duration: "15-20 minutes", Calories: 30, Notes: "Gentle stretches"},
				{Name: "Walking", Sets: 1, Duration: "30 minutes", Calories: 100, Notes: "Leisurely pace"},
				{Name: "Meditation", Sets: 1, Duration: "10-15 minutes", Calories: 10, Notes: "Mindfulness practice"},
			},
		},
	}
}
