package content

import "otiyot/internal/models"

// Fixed content tables, one pool per category and language variant. Pools are
// immutable at runtime; Key doubles as the history key so it must never change
// once shipped.

var sentencesHebrew = []models.ContentItem{
	{Key: "הילד אוכל תפוח", Prompt: "הילד ___ תפוח", Answer: "אוכל", Distractors: []string{"רץ", "ישן", "קורא"}},
	{Key: "החתול שותה חלב", Prompt: "החתול שותה ___", Answer: "חלב", Distractors: []string{"ספר", "כדור", "שולחן"}},
	{Key: "אמא קוראת סיפור", Prompt: "אמא ___ סיפור", Answer: "קוראת", Distractors: []string{"אוכלת", "רוקדת", "שוחה"}},
	{Key: "הכלב רץ בגינה", Prompt: "הכלב רץ ב___", Answer: "גינה", Distractors: []string{"כוס", "עיפרון", "חלון"}},
	{Key: "השמש זורחת בבוקר", Prompt: "השמש זורחת ב___", Answer: "בוקר", Distractors: []string{"כיסא", "נעל", "מרק"}},
	{Key: "הדג שוחה במים", Prompt: "הדג ___ במים", Answer: "שוחה", Distractors: []string{"עף", "קופץ", "כותב"}},
	{Key: "סבתא אופה עוגה", Prompt: "סבתא אופה ___", Answer: "עוגה", Distractors: []string{"מכונית", "מטרייה", "דלת"}},
	{Key: "הציפור שרה על העץ", Prompt: "הציפור ___ על העץ", Answer: "שרה", Distractors: []string{"נוהגת", "מבשלת", "צובעת"}},
	{Key: "אבא נוסע לעבודה", Prompt: "אבא ___ לעבודה", Answer: "נוסע", Distractors: []string{"אופה", "צוחק", "ישן"}},
	{Key: "הילדה מציירת פרח", Prompt: "הילדה מציירת ___", Answer: "פרח", Distractors: []string{"רעש", "קור", "חום"}},
	{Key: "התינוק ישן במיטה", Prompt: "התינוק ישן ב___", Answer: "מיטה", Distractors: []string{"מקרר", "ארון", "סיר"}},
	{Key: "הירח מאיר בלילה", Prompt: "הירח מאיר ב___", Answer: "לילה", Distractors: []string{"צהריים", "בוקר", "ערב"}},
}

var sentencesEnglish = []models.ContentItem{
	{Key: "The boy eats an apple", Prompt: "The boy ___ an apple", Answer: "eats", Distractors: []string{"runs", "sleeps", "reads"}},
	{Key: "The cat drinks milk", Prompt: "The cat drinks ___", Answer: "milk", Distractors: []string{"book", "ball", "table"}},
	{Key: "Mom reads a story", Prompt: "Mom ___ a story", Answer: "reads", Distractors: []string{"eats", "dances", "swims"}},
	{Key: "The dog runs in the garden", Prompt: "The dog runs in the ___", Answer: "garden", Distractors: []string{"cup", "pencil", "window"}},
	{Key: "The sun shines in the morning", Prompt: "The sun shines in the ___", Answer: "morning", Distractors: []string{"chair", "shoe", "soup"}},
	{Key: "The fish swims in the water", Prompt: "The fish ___ in the water", Answer: "swims", Distractors: []string{"flies", "jumps", "writes"}},
	{Key: "Grandma bakes a cake", Prompt: "Grandma bakes a ___", Answer: "cake", Distractors: []string{"car", "umbrella", "door"}},
	{Key: "The bird sings on the tree", Prompt: "The bird ___ on the tree", Answer: "sings", Distractors: []string{"drives", "cooks", "paints"}},
	{Key: "Dad drives to work", Prompt: "Dad ___ to work", Answer: "drives", Distractors: []string{"bakes", "laughs", "sleeps"}},
	{Key: "The girl draws a flower", Prompt: "The girl draws a ___", Answer: "flower", Distractors: []string{"noise", "cold", "heat"}},
}

var hangmanHebrew = []models.ContentItem{
	{Key: "שמש", Prompt: "שמש", Answer: "שמש", ImageTerm: "sun"},
	{Key: "ירח", Prompt: "ירח", Answer: "ירח", ImageTerm: "moon"},
	{Key: "כלב", Prompt: "כלב", Answer: "כלב", ImageTerm: "dog"},
	{Key: "חתול", Prompt: "חתול", Answer: "חתול", ImageTerm: "cat"},
	{Key: "פרח", Prompt: "פרח", Answer: "פרח", ImageTerm: "flower"},
	{Key: "בית", Prompt: "בית", Answer: "בית", ImageTerm: "house"},
	{Key: "ספר", Prompt: "ספר", Answer: "ספר", ImageTerm: "book"},
	{Key: "מים", Prompt: "מים", Answer: "מים", ImageTerm: "water"},
	{Key: "עץ", Prompt: "עץ", Answer: "עץ", ImageTerm: "tree"},
	{Key: "דג", Prompt: "דג", Answer: "דג", ImageTerm: "fish"},
	{Key: "תפוח", Prompt: "תפוח", Answer: "תפוח", ImageTerm: "apple"},
	{Key: "ציפור", Prompt: "ציפור", Answer: "ציפור", ImageTerm: "bird"},
}

var hangmanEnglish = []models.ContentItem{
	{Key: "sun", Prompt: "sun", Answer: "sun", ImageTerm: "sun"},
	{Key: "moon", Prompt: "moon", Answer: "moon", ImageTerm: "moon"},
	{Key: "dog", Prompt: "dog", Answer: "dog", ImageTerm: "dog"},
	{Key: "cat", Prompt: "cat", Answer: "cat", ImageTerm: "cat"},
	{Key: "flower", Prompt: "flower", Answer: "flower", ImageTerm: "flower"},
	{Key: "house", Prompt: "house", Answer: "house", ImageTerm: "house"},
	{Key: "book", Prompt: "book", Answer: "book", ImageTerm: "book"},
	{Key: "water", Prompt: "water", Answer: "water", ImageTerm: "water"},
	{Key: "tree", Prompt: "tree", Answer: "tree", ImageTerm: "tree"},
	{Key: "fish", Prompt: "fish", Answer: "fish", ImageTerm: "fish"},
	{Key: "apple", Prompt: "apple", Answer: "apple", ImageTerm: "apple"},
	{Key: "bird", Prompt: "bird", Answer: "bird", ImageTerm: "bird"},
}

var rhymesHebrew = []models.ContentItem{
	{Key: "דג-חג", Prompt: "דג", Answer: "חג", Distractors: []string{"שמש", "ספר", "כלב"}},
	{Key: "פיל-צליל", Prompt: "פיל", Answer: "צליל", Distractors: []string{"בית", "מים", "עץ"}},
	{Key: "פרח-קרח", Prompt: "פרח", Answer: "קרח", Distractors: []string{"חלון", "דלת", "גג"}},
	{Key: "לב-כלב", Prompt: "לב", Answer: "כלב", Distractors: []string{"ירח", "אור", "ים"}},
	{Key: "עין-יין", Prompt: "עין", Answer: "יין", Distractors: []string{"שיר", "צבע", "קול"}},
	{Key: "אור-דור", Prompt: "אור", Answer: "דור", Distractors: []string{"חול", "שלג", "גשם"}},
	{Key: "חול-כחול", Prompt: "חול", Answer: "כחול", Distractors: []string{"ספר", "רוח", "אבן"}},
	{Key: "גן-דן", Prompt: "גן", Answer: "דן", Distractors: []string{"תיק", "חלב", "לחם"}},
	{Key: "ים-חם", Prompt: "ים", Answer: "חם", Distractors: []string{"קיר", "צל", "דשא"}},
	{Key: "טל-צל", Prompt: "טל", Answer: "צל", Distractors: []string{"פרי", "עלה", "שורש"}},
}

var rhymesEnglish = []models.ContentItem{
	{Key: "cat-hat", Prompt: "cat", Answer: "hat", Distractors: []string{"sun", "book", "dog"}},
	{Key: "dog-frog", Prompt: "dog", Answer: "frog", Distractors: []string{"house", "water", "tree"}},
	{Key: "moon-spoon", Prompt: "moon", Answer: "spoon", Distractors: []string{"window", "door", "roof"}},
	{Key: "star-car", Prompt: "star", Answer: "car", Distractors: []string{"light", "sea", "heart"}},
	{Key: "bear-chair", Prompt: "bear", Answer: "chair", Distractors: []string{"song", "color", "voice"}},
	{Key: "cake-lake", Prompt: "cake", Answer: "lake", Distractors: []string{"sand", "snow", "rain"}},
	{Key: "tree-bee", Prompt: "tree", Answer: "bee", Distractors: []string{"book", "wind", "stone"}},
	{Key: "mouse-house", Prompt: "mouse", Answer: "house", Distractors: []string{"bag", "milk", "bread"}},
}

var readingHebrew = []models.ContentItem{
	{
		Key:         "דני והכדור",
		Prompt:      "דני יצא לגינה עם כדור אדום. הוא בעט בכדור והכדור עף גבוה. מה הצבע של הכדור?",
		Answer:      "אדום",
		Distractors: []string{"כחול", "ירוק", "צהוב"},
	},
	{
		Key:         "החתולה של רותי",
		Prompt:      "לרותי יש חתולה בשם מצי. מצי אוהבת לשתות חלב בבוקר. מה מצי אוהבת לשתות?",
		Answer:      "חלב",
		Distractors: []string{"מים", "מיץ", "תה"},
	},
	{
		Key:         "טיול בגן החיות",
		Prompt:      "המשפחה נסעה לגן החיות. הם ראו פיל גדול ואפור. איזו חיה הם ראו?",
		Answer:      "פיל",
		Distractors: []string{"אריה", "קוף", "נמר"},
	},
	{
		Key:         "העוגה של סבתא",
		Prompt:      "סבתא אפתה עוגת שוקולד ליום ההולדת של יואב. לכבוד מה סבתא אפתה עוגה?",
		Answer:      "יום הולדת",
		Distractors: []string{"חג", "שבת", "חתונה"},
	},
	{
		Key:         "הגשם הראשון",
		Prompt:      "בחורף ירד גשם חזק. נועה לבשה מעיל ולקחה מטרייה. מה נועה לקחה?",
		Answer:      "מטרייה",
		Distractors: []string{"כובע", "תיק", "כדור"},
	},
	{
		Key:         "הציפור על החלון",
		Prompt:      "ציפור קטנה עמדה על אדן החלון ושרה שיר יפה. איפה עמדה הציפור?",
		Answer:      "על החלון",
		Distractors: []string{"על העץ", "על הגג", "על הדשא"},
	},
}

var readingEnglish = []models.ContentItem{
	{
		Key:         "Danny and the ball",
		Prompt:      "Danny went to the garden with a red ball. He kicked the ball and it flew high. What color is the ball?",
		Answer:      "red",
		Distractors: []string{"blue", "green", "yellow"},
	},
	{
		Key:         "Ruth's cat",
		Prompt:      "Ruth has a cat named Mitzi. Mitzi loves to drink milk in the morning. What does Mitzi love to drink?",
		Answer:      "milk",
		Distractors: []string{"water", "juice", "tea"},
	},
	{
		Key:         "A trip to the zoo",
		Prompt:      "The family drove to the zoo. They saw a big gray elephant. Which animal did they see?",
		Answer:      "elephant",
		Distractors: []string{"lion", "monkey", "tiger"},
	},
	{
		Key:         "Grandma's cake",
		Prompt:      "Grandma baked a chocolate cake for Yoav's birthday. What did Grandma bake the cake for?",
		Answer:      "a birthday",
		Distractors: []string{"a holiday", "a picnic", "a wedding"},
	},
}

var vocabularyHebrew = []models.ContentItem{
	{Key: "voc-שמש", Prompt: "שמש", Answer: "שמש", Distractors: []string{"ירח", "כוכב", "ענן"}, ImageTerm: "sun"},
	{Key: "voc-כלב", Prompt: "כלב", Answer: "כלב", Distractors: []string{"חתול", "דג", "ציפור"}, ImageTerm: "dog"},
	{Key: "voc-בית", Prompt: "בית", Answer: "בית", Distractors: []string{"גן", "רחוב", "חנות"}, ImageTerm: "house"},
	{Key: "voc-תפוח", Prompt: "תפוח", Answer: "תפוח", Distractors: []string{"בננה", "ענב", "אגס"}, ImageTerm: "apple"},
	{Key: "voc-פרח", Prompt: "פרח", Answer: "פרח", Distractors: []string{"עץ", "עלה", "דשא"}, ImageTerm: "flower"},
	{Key: "voc-ספר", Prompt: "ספר", Answer: "ספר", Distractors: []string{"עיתון", "מחברת", "עיפרון"}, ImageTerm: "book"},
	{Key: "voc-מים", Prompt: "מים", Answer: "מים", Distractors: []string{"חלב", "מיץ", "מרק"}, ImageTerm: "water"},
	{Key: "voc-אוטו", Prompt: "אוטו", Answer: "אוטו", Distractors: []string{"אופניים", "רכבת", "מטוס"}, ImageTerm: "car"},
	{Key: "voc-כיסא", Prompt: "כיסא", Answer: "כיסא", Distractors: []string{"שולחן", "מיטה", "ארון"}, ImageTerm: "chair"},
	{Key: "voc-כדור", Prompt: "כדור", Answer: "כדור", Distractors: []string{"בובה", "משחק", "חבל"}, ImageTerm: "ball"},
	{Key: "voc-ציפור", Prompt: "ציפור", Answer: "ציפור", Distractors: []string{"פרפר", "דבורה", "זבוב"}, ImageTerm: "bird"},
	{Key: "voc-דג", Prompt: "דג", Answer: "דג", Distractors: []string{"צב", "צפרדע", "לוויתן"}, ImageTerm: "fish"},
}

var vocabularyEnglish = []models.ContentItem{
	{Key: "voc-sun", Prompt: "sun", Answer: "sun", Distractors: []string{"moon", "star", "cloud"}, ImageTerm: "sun"},
	{Key: "voc-dog", Prompt: "dog", Answer: "dog", Distractors: []string{"cat", "fish", "bird"}, ImageTerm: "dog"},
	{Key: "voc-house", Prompt: "house", Answer: "house", Distractors: []string{"garden", "street", "shop"}, ImageTerm: "house"},
	{Key: "voc-apple", Prompt: "apple", Answer: "apple", Distractors: []string{"banana", "grape", "pear"}, ImageTerm: "apple"},
	{Key: "voc-flower", Prompt: "flower", Answer: "flower", Distractors: []string{"tree", "leaf", "grass"}, ImageTerm: "flower"},
	{Key: "voc-book", Prompt: "book", Answer: "book", Distractors: []string{"paper", "notebook", "pencil"}, ImageTerm: "book"},
	{Key: "voc-water", Prompt: "water", Answer: "water", Distractors: []string{"milk", "juice", "soup"}, ImageTerm: "water"},
	{Key: "voc-car", Prompt: "car", Answer: "car", Distractors: []string{"bicycle", "train", "plane"}, ImageTerm: "car"},
	{Key: "voc-chair", Prompt: "chair", Answer: "chair", Distractors: []string{"table", "bed", "closet"}, ImageTerm: "chair"},
	{Key: "voc-ball", Prompt: "ball", Answer: "ball", Distractors: []string{"doll", "game", "rope"}, ImageTerm: "ball"},
}

var pools = map[models.Category]map[models.Language][]models.ContentItem{
	models.CategorySentences: {
		models.LanguageHebrew:  sentencesHebrew,
		models.LanguageEnglish: sentencesEnglish,
	},
	models.CategoryHangman: {
		models.LanguageHebrew:  hangmanHebrew,
		models.LanguageEnglish: hangmanEnglish,
	},
	models.CategoryRhymes: {
		models.LanguageHebrew:  rhymesHebrew,
		models.LanguageEnglish: rhymesEnglish,
	},
	models.CategoryReading: {
		models.LanguageHebrew:  readingHebrew,
		models.LanguageEnglish: readingEnglish,
	},
	models.CategoryVocabulary: {
		models.LanguageHebrew:  vocabularyHebrew,
		models.LanguageEnglish: vocabularyEnglish,
	},
}

// PoolFor returns the fixed pool for a category and language. Unknown
// combinations return an empty pool, which callers treat as "no content
// available".
func PoolFor(category models.Category, lang models.Language) []models.ContentItem {
	byLang, ok := pools[category]
	if !ok {
		return nil
	}
	return byLang[lang]
}
