package ai

import "github.com/macromind/backend/internal/model"

var fallbackMeals = map[model.MealType]map[model.FitnessGoal]GeneratedMeal{
	model.MealTypeBreakfast: {
		model.FitnessGoalCut: {
			Name: "Greek Yogurt with Berries and Almonds", Calories: 350, Protein: 25, Carbs: 40, Fats: 10,
			Ingredients: []string{"1 cup Greek yogurt (non-fat)", "1/2 cup mixed berries", "2 tbsp sliced almonds", "1 tsp honey"},
		},
		model.FitnessGoalBulk: {
			Name: "Protein Pancakes with Peanut Butter", Calories: 550, Protein: 35, Carbs: 65, Fats: 15,
			Ingredients: []string{"3 protein pancakes", "2 tbsp peanut butter", "1 banana", "2 tbsp maple syrup"},
		},
		model.FitnessGoalMaintain: {
			Name: "Oatmeal with Berries and Nuts", Calories: 400, Protein: 15, Carbs: 55, Fats: 12,
			Ingredients: []string{"1 cup rolled oats", "1/2 cup mixed berries", "2 tbsp mixed nuts", "1 cup almond milk"},
		},
	},
	model.MealTypeLunch: {
		model.FitnessGoalCut: {
			Name: "Grilled Chicken Salad", Calories: 450, Protein: 45, Carbs: 30, Fats: 15,
			Ingredients: []string{"6 oz grilled chicken breast", "3 cups mixed greens", "1/2 cup cherry tomatoes", "1/4 avocado", "2 tbsp balsamic vinaigrette"},
		},
		model.FitnessGoalBulk: {
			Name: "Chicken and Rice Bowl", Calories: 700, Protein: 55, Carbs: 85, Fats: 15,
			Ingredients: []string{"8 oz grilled chicken breast", "1.5 cups brown rice", "1 cup steamed broccoli", "2 tbsp olive oil"},
		},
		model.FitnessGoalMaintain: {
			Name: "Turkey and Quinoa Bowl", Calories: 550, Protein: 40, Carbs: 60, Fats: 15,
			Ingredients: []string{"6 oz ground turkey", "1 cup quinoa", "1 cup mixed vegetables", "1 tbsp olive oil"},
		},
	},
	model.MealTypeDinner: {
		model.FitnessGoalCut: {
			Name: "Baked Salmon with Vegetables", Calories: 500, Protein: 50, Carbs: 35, Fats: 18,
			Ingredients: []string{"6 oz salmon fillet", "2 cups roasted vegetables", "1/2 cup sweet potato", "1 tbsp olive oil", "Lemon and herbs"},
		},
		model.FitnessGoalBulk: {
			Name: "Steak with Pasta", Calories: 800, Protein: 60, Carbs: 80, Fats: 25,
			Ingredients: []string{"8 oz sirloin steak", "2 cups whole wheat pasta", "1/2 cup marinara sauce", "1 cup steamed broccoli", "2 tbsp parmesan cheese"},
		},
		model.FitnessGoalMaintain: {
			Name: "Chicken Stir-Fry", Calories: 600, Protein: 45, Carbs: 65, Fats: 18,
			Ingredients: []string{"6 oz chicken breast", "2 cups mixed vegetables", "1 cup brown rice", "2 tbsp stir-fry sauce", "1 tbsp sesame oil"},
		},
	},
}

// FallbackMeal returns the static meal for mealType and goal. Unknown
// combinations get the maintain breakfast. The result is a copy.
func FallbackMeal(mealType model.MealType, goal model.FitnessGoal) GeneratedMeal {
	meal, ok := fallbackMeals[mealType][goal]
	if !ok {
		meal = fallbackMeals[model.MealTypeBreakfast][model.FitnessGoalMaintain]
	}
	meal.Ingredients = append([]string(nil), meal.Ingredients...)
	return meal
}
