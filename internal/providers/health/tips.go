package health

import "math/rand"

var healthTips = []string{
	"Drink plenty of water every day.",
	"Exercise regularly for at least 30 minutes.",
	"Eat a balanced diet rich in fruits and vegetables.",
	"Get enough sleep every night.",
	"Wash your hands frequently to prevent illness.",
}

// RandomTip returns one of the built-in daily health tips.
func RandomTip() string {
	return healthTips[rand.Intn(len(healthTips))]
}
