package sentiment

import "strings"

// 内置的默认分类器：极简词表打分。
// 不追求与专业情感库对齐，只保证二进制开箱可用；
// 对精度有要求时通过 Classifier 注入外部实现。

// valence 为情感词的极性权重。
var valence = map[string]float64{
	// 正面
	"good": 0.5, "great": 0.8, "excellent": 0.9, "amazing": 0.8, "awesome": 0.9,
	"love": 0.7, "loved": 0.7, "like": 0.3, "liked": 0.3, "best": 0.8,
	"nice": 0.5, "happy": 0.6, "perfect": 0.9, "fantastic": 0.8, "solid": 0.4,
	"recommend": 0.6, "recommended": 0.6, "worth": 0.4, "impressive": 0.7,
	"fast": 0.3, "smooth": 0.4, "beautiful": 0.7, "easy": 0.3, "better": 0.3,
	"win": 0.4, "works": 0.2, "fine": 0.2, "enjoy": 0.6, "enjoyed": 0.6,
	// 负面
	"bad": -0.5, "terrible": -0.9, "awful": -0.9, "horrible": -0.9, "worst": -0.9,
	"hate": -0.7, "hated": -0.7, "dislike": -0.5, "poor": -0.5, "broken": -0.6,
	"issue": -0.3, "issues": -0.3, "problem": -0.4, "problems": -0.4,
	"slow": -0.3, "lag": -0.4, "laggy": -0.5, "expensive": -0.3, "overpriced": -0.6,
	"disappointing": -0.7, "disappointed": -0.7, "defect": -0.6, "defective": -0.7,
	"waste": -0.6, "useless": -0.7, "worse": -0.4, "ugly": -0.5, "fail": -0.5,
	"failed": -0.5, "crash": -0.6, "crashes": -0.6, "annoying": -0.5, "buggy": -0.6,
}

// subjective 为与极性无关但表达主观态度的词。
var subjective = map[string]struct{}{
	"think": {}, "feel": {}, "believe": {}, "opinion": {}, "probably": {},
	"maybe": {}, "seems": {}, "honestly": {}, "personally": {}, "definitely": {},
	"really": {}, "totally": {}, "absolutely": {}, "imo": {}, "imho": {},
}

// Classify 是默认的词表分类器实现。
// 极性取命中词权重的均值并截断到 [-1,1]；
// 主观性取主观词（含情感词）占比并截断到 [0,1]。
func Classify(text string) Score {
	if strings.TrimSpace(text) == "" {
		return Score{Label: LabelNeutral}
	}
	words := strings.Fields(strings.ToLower(text))
	var sum float64
	matched, subj := 0, 0
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:\"'()[]")
		if v, ok := valence[w]; ok {
			sum += v
			matched++
			subj++
			continue
		}
		if _, ok := subjective[w]; ok {
			subj++
		}
	}
	var polarity float64
	if matched > 0 {
		polarity = clamp(sum/float64(matched), -1, 1)
	}
	subjectivity := clamp(float64(subj*3)/float64(len(words)), 0, 1)
	return Score{
		Polarity:     polarity,
		Subjectivity: subjectivity,
		Label:        LabelFor(polarity),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
