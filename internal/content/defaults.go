// Package content provides the tables the flick grid navigates: the base
// row selector, the hiragana rows, and the template phrase categories.
//
// Built-in tables are returned by Default. A YAML file can override any
// part of them; see Load and Watch.
package content

import "github.com/dshills/flickpad/internal/input/nav"

// FreeInputLabel is the category entry that leaves template mode.
const FreeInputLabel = "自由入力"

// Row characters follow the usual flick layout: the vowel-a kana in the
// center, i to the left, u up, e to the right, o down. Cells 0, 2 and 6
// stay blank because the detail view overlays back, delete and the
// template switch there.
var defaultRows = map[string]nav.GridContent{
	"あ": {"", "う", "", "い", "あ", "え", "", "お", "。"},
	"か": {"", "く", "", "き", "か", "け", "", "こ", "、"},
	"さ": {"", "す", "", "し", "さ", "せ", "", "そ", "？"},
	"た": {"", "つ", "", "ち", "た", "て", "", "と", "っ"},
	"な": {"", "ぬ", "", "に", "な", "ね", "", "の", "！"},
	"は": {"", "ふ", "", "ひ", "は", "へ", "", "ほ", "ー"},
	"ま": {"", "む", "", "み", "ま", "め", "", "も", ""},
	"や": {"", "ゆ", "", "を", "や", "ん", "", "よ", "ゃ"},
	"ら": {"", "る", "", "り", "ら", "れ", "", "ろ", "わ"},
}

var defaultBase = nav.GridContent{
	"あ", "か", "さ",
	"た", "な", "は",
	"ま", "や", "ら",
}

// Cell 0 is blank (back has nowhere to go) and cell 8 is clear-all.
var defaultCategories = nav.GridContent{
	"", "あいさつ", "返事",
	"体調", "お願い", "気持ち",
	FreeInputLabel, "場所", "",
}

var defaultDetails = map[string]nav.GridContent{
	"あいさつ": {"", "おはよう", "", "こんにちは", "ありがとう", "こんばんは", "おやすみ", "ごめんなさい", "またね"},
	"返事":   {"", "はい", "", "いいえ", "わかりました", "わかりません", "ちょっと待って", "もう一度", "大丈夫"},
	"体調":   {"", "痛い", "", "苦しい", "だるい", "暑い", "寒い", "眠い", "気分が悪い"},
	"お願い":  {"", "水がほしい", "", "トイレに行きたい", "来てください", "体の向きを変えて", "テレビをつけて", "電気を消して", "窓を開けて"},
	"気持ち":  {"", "うれしい", "", "かなしい", "楽しい", "不安", "さみしい", "つらい", "安心した"},
	"場所":   {"", "家に帰りたい", "", "外に出たい", "ここにいたい", "ベッド", "車いす", "病院", "リビング"},
}

// Default returns the built-in tables. The maps are fresh copies.
func Default() nav.Tables {
	return nav.Tables{
		Base:           defaultBase,
		Rows:           copyGrids(defaultRows),
		Categories:     defaultCategories,
		Details:        copyGrids(defaultDetails),
		FreeInputLabel: FreeInputLabel,
	}
}

func copyGrids(src map[string]nav.GridContent) map[string]nav.GridContent {
	dst := make(map[string]nav.GridContent, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
