// Package textutil provides text normalization helpers for title matching.
//
// Catalog titles arrive from multiple reference sources with inconsistent
// casing, punctuation, and diacritics ("Super Mario Bros" vs
// "Super Mario Bros."). TitleKey folds a title down to a canonical
// comparison key so the reconciliation engine can group releases that name
// the same game.
package textutil
