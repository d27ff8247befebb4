// Command kvcalc estimates the series turns to rewind a motor to so it
// reaches a desired no-load speed on a given supply, scaled from a
// reference motor's measured KV.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/NickelKnock/Axial-Motor-Design-Calculator/internal/motor"
)

func main() {
	rpm := flag.Float64("rpm", 0, "desired no-load speed (RPM)")
	volts := flag.Float64("volts", 0, "supply voltage (V)")
	refKV := flag.Float64("ref-kv", motor.DefaultReferenceKV, "reference motor KV (RPM/V)")
	refTurns := flag.Int("ref-turns", motor.DefaultReferenceTurns, "reference motor series turns")
	flag.Parse()

	turns, err := motor.RewindTurns(*rpm, *volts, motor.RewindReference{
		KV:    *refKV,
		Turns: *refTurns,
	})
	if err != nil {
		log.Fatalf("rewind estimate failed: %v", err)
	}

	fmt.Printf("Target KV: %.2f RPM/V\n", *rpm / *volts)
	fmt.Printf("New number of turns: %d\n", turns)
}
