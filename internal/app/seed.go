package service

import "github.com/okian/tudu/internal/domain/types"

// DemoTodos returns the demo records loaded when seed_demo_data is enabled.
func DemoTodos() []types.Todo {
	return []types.Todo{
		{ID: 1, Name: "Buy groceries", Description: "Milk, Bread, Eggs", Priority: types.PriorityMedium},
		{ID: 2, Name: "Read a book", Description: "Finish reading 'The Great Gatsby'", Priority: types.PriorityLow},
		{ID: 3, Name: "Sports", Description: "Play football", Priority: types.PriorityHigh, Completed: true},
		{ID: 4, Name: "Workout", Description: "Go to the gym for a workout session", Priority: types.PriorityHigh},
		{ID: 5, Name: "Call Mom", Description: "Catch up with Mom over the phone", Priority: types.PriorityMedium},
	}
}
