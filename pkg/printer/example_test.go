package printer_test

import (
	"fmt"

	"github.com/matzehuels/prettify/pkg/doc"
	"github.com/matzehuels/prettify/pkg/printer"
)

func ExamplePrint() {
	call := doc.Group(doc.Concat(
		doc.String("print("),
		doc.Indent(doc.Concat(
			doc.SoftLine(),
			doc.Join([]doc.Doc{doc.String("alpha"), doc.String("beta"), doc.String("gamma")},
				doc.Concat(doc.String(","), doc.Line())),
		)),
		doc.SoftLine(),
		doc.String(")"),
	))

	fmt.Println(printer.Print(call, printer.DefaultConfig))
	fmt.Println(printer.Print(call, printer.Config{PrintWidth: 20}))
	// Output:
	// print(alpha, beta, gamma)
	// print(
	//     alpha,
	//     beta,
	//     gamma
	// )
}

func ExampleRender() {
	d := doc.Concat(doc.String("let x = "), doc.Cursor(), doc.String("42;"))
	res := printer.Render(d, printer.DefaultConfig)
	fmt.Println(res.Formatted)
	fmt.Println(res.CursorOffsets)
	// Output:
	// let x = 42;
	// [8]
}

func ExamplePrint_fill() {
	var words []doc.Doc
	for _, w := range []string{"the", "quick", "brown", "fox", "jumps", "over", "the", "lazy", "dog"} {
		words = append(words, doc.String(w))
	}
	fmt.Println(printer.Print(doc.Fill(doc.JoinToSlice(words, doc.Line())), printer.Config{PrintWidth: 16}))
	// Output:
	// the quick brown
	// fox jumps over
	// the lazy dog
}
