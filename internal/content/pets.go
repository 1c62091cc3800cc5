package content

import "otiyot/internal/models"

var pets = []models.Pet{
	{
		ID:   "tzipi",
		Name: "ציפי הציפור",
		Rewards: []models.Reward{
			{Message: "ציפי מצאה נוצה נוצצת בשבילך!", Image: "rewards/tzipi_feather.png"},
			{Message: "ציפי שרה לך שיר מיוחד!", Image: "rewards/tzipi_song.png"},
			{Message: "ציפי בנתה קן חדש ויפה!", Image: "rewards/tzipi_nest.png"},
			{Message: "ציפי עפה גבוה-גבוה לכבודך!", Image: "rewards/tzipi_fly.png"},
		},
	},
	{
		ID:   "kofiko",
		Name: "קופיקו הקוף",
		Rewards: []models.Reward{
			{Message: "קופיקו קטף לך בננה מתוקה!", Image: "rewards/kofiko_banana.png"},
			{Message: "קופיקו עושה סלטה באוויר!", Image: "rewards/kofiko_flip.png"},
			{Message: "קופיקו מצא אוצר בג'ונגל!", Image: "rewards/kofiko_treasure.png"},
		},
	},
	{
		ID:   "dagdag",
		Name: "דגדג הדג",
		Rewards: []models.Reward{
			{Message: "דגדג מצא צדף זוהר במעמקים!", Image: "rewards/dagdag_shell.png"},
			{Message: "דגדג עושה בועות שמחה!", Image: "rewards/dagdag_bubbles.png"},
			{Message: "דגדג שוחה במהירות האור!", Image: "rewards/dagdag_swim.png"},
			{Message: "דגדג מזמין אותך לארמון האלמוגים!", Image: "rewards/dagdag_palace.png"},
		},
	},
}

// Pets returns every selectable pet profile
func Pets() []models.Pet {
	return pets
}

// PetByID finds a pet, falling back to the first pet for unknown or empty IDs
// so reward selection always has a list to index into.
func PetByID(id string) models.Pet {
	for _, p := range pets {
		if p.ID == id {
			return p
		}
	}
	return pets[0]
}
