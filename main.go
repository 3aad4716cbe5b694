package main

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/unisim/universal/applications/quadratic"
	"github.com/unisim/universal/areal"
	"github.com/unisim/universal/cfloat"
	"github.com/unisim/universal/display"
	"github.com/unisim/universal/posit"
	"github.com/unisim/universal/verify"
)

func main() {
	format := "%-14s\t%16s\t%s\n"
	sep := "-------------------------------------"

	fmt.Println("encodings of 0.0625")
	c := cfloat.FromFloat64(cfloat.Config{NBits: 8, Es: 2, HasSubnormals: true}, 0.0625)
	p := posit.FromFloat64(posit.Config{NBits: 8, Es: 2}, 0.0625)
	u := areal.FromFloat64(areal.Config{NBits: 8, Es: 2}, 0.0625)

	fmt.Printf(format, "cfloat<8,2>", c.String(), c.ToBinary())
	fmt.Printf(format, "posit<8,2>", p.String(), p.ToBinary())
	fmt.Printf(format, "areal<8,2>", u.String(), u.ToBinary())
	fmt.Println(sep)

	fmt.Println("the same value across locales")
	fmt.Printf(format, "en", display.Format(u, language.English, 4), "")
	fmt.Printf(format, "fr", display.Format(u, language.French, 4), "")
	fmt.Println(sep)

	fmt.Println("bfloat16 and tensorfloat32 presets from 1.2345")
	bf := cfloat.FromFloat64(cfloat.BFloat16(), 1.2345)
	tf := cfloat.FromFloat64(cfloat.TensorFloat32(), 1.2345)
	fmt.Printf(format, "bfloat16", bf.String(), bf.ToBinary())
	fmt.Printf(format, "tensorfloat32", tf.String(), tf.ToBinary())
	fmt.Println(sep)

	fmt.Println("quadratic x^2 + 1e4 x + 1 = 0, small root")
	for _, r := range quadratic.Compare(1, 1e4, 1) {
		fmt.Printf(format, r.System, fmt.Sprintf("%.12g", r.Root), r.Bits)
	}
	fmt.Println(sep)

	fmt.Println("self-verification sweep")
	reports, err := verify.Run(verify.DefaultMatrix())
	if err != nil {
		fmt.Println("matrix error:", err)
		return
	}
	failures := 0
	for _, r := range reports {
		fmt.Println(r)
		failures += r.Failures
	}
	for _, es := range []int{1, 2} {
		r := verify.UbitLaw(areal.Config{NBits: 8, Es: es})
		fmt.Println(r)
		failures += r.Failures
	}
	fmt.Println(sep)
	fmt.Println("total failures:", failures)
}
