package app

import (
	"math"
	"time"
)

func DoEvery(d time.Duration, f func(time.Time)) { //Simple Task Repeater
	for x := range time.Tick(d) {
		f(x)
	}
}

func RoundCost(x float64, prec int) float64 {
	var rounder float64
	pow := math.Pow(10, float64(prec))
	intermed := x * pow
	rounder = math.Floor(intermed)
	return rounder / pow
}

func CurrentMessageTime() string {
	t := time.Now()
	return t.Format("02.01.2006 15:04")
}

func RemoveTrailingSlash(s string) string {
	if len(s) > 0 && s[len(s)-1] == '/' {
		return s[:len(s)-1]
	}
	return s
}
