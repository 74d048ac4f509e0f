package embedding

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Special tokens of BERT-style vocabularies.
const (
	clsToken = "[CLS]"
	sepToken = "[SEP]"
	unkToken = "[UNK]"
	padToken = "[PAD]"

	maxWordRunes = 100
)

// Tokenizer produces token IDs for BERT-style models (input_ids, attention_mask, token_type_ids).
type Tokenizer interface {
	Tokenize(text string, maxTokens int) (inputIDs, attentionMask, tokenTypeIDs []int64)
}

// WordPieceTokenizer is the uncased BERT tokenizer used by all-MiniLM-L6-v2: text is cleaned,
// lower-cased, stripped of accents and split on whitespace and punctuation, then each word is
// split greedily into the longest vocabulary pieces ("##" marks a continuation).
type WordPieceTokenizer struct {
	vocab map[string]int64
	cls   int64
	sep   int64
	unk   int64
	pad   int64
}

// LoadVocab reads a vocab.txt file: one token per line, the line number is the token id.
func LoadVocab(path string) (map[string]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocab: %w", err)
	}
	defer f.Close()

	vocab := make(map[string]int64)
	scanner := bufio.NewScanner(f)
	var id int64
	for scanner.Scan() {
		tok := strings.TrimRight(scanner.Text(), "\r")
		if _, ok := vocab[tok]; !ok {
			vocab[tok] = id
		}
		id++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vocab: %w", err)
	}
	return vocab, nil
}

// NewWordPieceTokenizer builds a tokenizer over vocab, which must contain [CLS], [SEP], [UNK]
// and [PAD].
func NewWordPieceTokenizer(vocab map[string]int64) (*WordPieceTokenizer, error) {
	t := &WordPieceTokenizer{vocab: vocab}
	for _, special := range []struct {
		token string
		id    *int64
	}{
		{clsToken, &t.cls},
		{sepToken, &t.sep},
		{unkToken, &t.unk},
		{padToken, &t.pad},
	} {
		id, ok := vocab[special.token]
		if !ok {
			return nil, fmt.Errorf("vocab has no %s token", special.token)
		}
		*special.id = id
	}
	return t, nil
}

// Tokenize produces [CLS] pieces [SEP] padded with [PAD] to exactly maxTokens. Pieces beyond
// maxTokens-2 are dropped. token_type_ids are all zero.
func (t *WordPieceTokenizer) Tokenize(text string, maxTokens int) (inputIDs, attentionMask, tokenTypeIDs []int64) {
	if maxTokens <= 2 {
		maxTokens = 256
	}
	inputIDs = make([]int64, maxTokens)
	attentionMask = make([]int64, maxTokens)
	tokenTypeIDs = make([]int64, maxTokens)
	for i := range inputIDs {
		inputIDs[i] = t.pad
	}

	inputIDs[0] = t.cls
	attentionMask[0] = 1
	pos := 1
	for _, id := range t.pieceIDs(text) {
		if pos >= maxTokens-1 {
			break
		}
		inputIDs[pos] = id
		attentionMask[pos] = 1
		pos++
	}
	inputIDs[pos] = t.sep
	attentionMask[pos] = 1
	return inputIDs, attentionMask, tokenTypeIDs
}

// pieceIDs returns the WordPiece ids of text without special tokens.
func (t *WordPieceTokenizer) pieceIDs(text string) []int64 {
	var ids []int64
	for _, word := range basicTokenize(text) {
		ids = append(ids, t.wordPiece(word)...)
	}
	return ids
}

// wordPiece splits one word greedily, longest match first. A word that cannot be fully covered
// by vocabulary pieces becomes a single [UNK].
func (t *WordPieceTokenizer) wordPiece(word string) []int64 {
	runes := []rune(word)
	if len(runes) > maxWordRunes {
		return []int64{t.unk}
	}
	var ids []int64
	for start := 0; start < len(runes); {
		end := len(runes)
		var id int64
		found := false
		for end > start {
			piece := string(runes[start:end])
			if start > 0 {
				piece = "##" + piece
			}
			if v, ok := t.vocab[piece]; ok {
				id, found = v, true
				break
			}
			end--
		}
		if !found {
			return []int64{t.unk}
		}
		ids = append(ids, id)
		start = end
	}
	return ids
}

// basicTokenize cleans, lower-cases and strips accents from text, then splits it on whitespace
// and punctuation. Punctuation characters and CJK ideographs become words of their own.
func basicTokenize(text string) []string {
	var b strings.Builder
	for _, r := range norm.NFD.String(strings.ToLower(text)) {
		switch {
		case r == 0 || r == unicode.ReplacementChar:
		case unicode.Is(unicode.Mn, r):
		case isWhitespace(r):
			b.WriteRune(' ')
		case unicode.IsControl(r):
		case isPunctuation(r) || isCJK(r):
			b.WriteRune(' ')
			b.WriteRune(r)
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Fields(b.String())
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || unicode.Is(unicode.Zs, r)
}

// isPunctuation treats every non-alphanumeric ASCII symbol as punctuation, as BERT does.
func isPunctuation(r rune) bool {
	if (r >= 33 && r <= 47) || (r >= 58 && r <= 64) || (r >= 91 && r <= 96) || (r >= 123 && r <= 126) {
		return true
	}
	return unicode.IsPunct(r)
}

func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0x3400 && r <= 0x4DBF) ||
		(r >= 0x20000 && r <= 0x2A6DF) ||
		(r >= 0x2A700 && r <= 0x2B73F) ||
		(r >= 0x2B740 && r <= 0x2B81F) ||
		(r >= 0x2B820 && r <= 0x2CEAF) ||
		(r >= 0xF900 && r <= 0xFAFF) ||
		(r >= 0x2F800 && r <= 0x2FA1F)
}
