package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"

	"github.com/xmss-hw/wotsref/parameters"
	"github.com/xmss-hw/wotsref/util"
	"github.com/xmss-hw/wotsref/wots"
)

func digitWidth(params *parameters.Parameters) int {
	return len(strconv.Itoa(params.W - 1))
}

func printDigitsPadded(params *parameters.Parameters, arr []int) {
	width := digitWidth(params)
	fmt.Print("[")
	for i := 0; i < len(arr); i++ {
		fmt.Printf("%0*d ", width, arr[i])
	}
	fmt.Println("]")
}

// printDigitsVsExpected prints the expected chain positions, then the
// recovered ones with every disagreeing chain in red. -1 marks a chain
// that matched no position.
func printDigitsVsExpected(params *parameters.Parameters, expected, got []int) {
	width := digitWidth(params)
	printDigitsPadded(params, expected)

	c := color.New(color.FgRed)
	fmt.Print("[")
	for i := 0; i < len(expected); i++ {
		if got[i] == expected[i] {
			fmt.Printf("%0*d ", width, got[i])
			continue
		}
		text := fmt.Sprintf("%0*d ", width, got[i])
		if got[i] < 0 {
			text = fmt.Sprintf("%*s ", width, "x")
		}
		if _, err := c.Print(text); err != nil {
			panic("error printing in colour")
		}
	}
	fmt.Println("]")
}

// printForgeable shows the chain lengths a message needs against the
// shortest positions recovered so far, in red where a chain is too short.
func printForgeable(params *parameters.Parameters, lengths, positions []int) {
	width := digitWidth(params)
	red, green := color.New(color.FgRed), color.New(color.FgGreen)
	fmt.Print("[")
	for i := 0; i < len(lengths); i++ {
		c := green
		if lengths[i] < positions[i] {
			c = red
		}
		if _, err := c.Printf("%0*d ", width, lengths[i]); err != nil {
			panic("error printing in colour")
		}
	}
	fmt.Println("]")
	printDigitsPadded(params, positions)
}

func printChains(values [][]byte) {
	for i, v := range values {
		fmt.Printf("%3d %x\n", i, v)
	}
}

func printVerdict(ok bool) {
	if ok {
		color.Green("PASS")
	} else {
		color.Red("FAIL")
	}
}

func parseSignature(params *parameters.Parameters, s string) ([][]byte, error) {
	flat, err := util.HexToBytes(s)
	if err != nil {
		return nil, err
	}
	return wots.Split(params, flat)
}

func parseDigest(params *parameters.Parameters, s string) ([]byte, error) {
	return util.HexToDigest(s, params.N)
}

func hexString(b []byte) string {
	return hex.EncodeToString(b)
}

func appendToFile(filename string, line string) error {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return err
	}
	if _, err = f.WriteString(line + "\n"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
