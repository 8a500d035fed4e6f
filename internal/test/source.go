package test

import (
	"math/rand"
	"strings"
)

const validTokens = "int;double;long;char;bool;fun;if;then;else;true;false;andalso;orelse;main;x;y;acc;_tmp;(;);{;};,;.;42;123;0;3.14;.5;'c';\"z\";=;+=;-=;*=;/=;+;-;*;/;//;==;>;<;(* a comment *);\n"

// GetRandomTokens produces a well-formed token soup of the given size for
// scanner benchmarks. The output is lexically valid but not grammatical.
func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}
