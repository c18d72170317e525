package text_test

import (
	"fmt"

	"github.com/walteh/swcfix/pkg/text"
)

func ExampleEngine_Rewrite() {
	engine := text.NewEngine(text.DefaultORMPackage)

	result := engine.Rewrite("@ManyToOne(() => Order, (order) => order.items) @JoinColumn() order: Order;\n")

	fmt.Printf("Status: %s\n", result.Status)
	fmt.Printf("Replacements: %d\n", result.Replacements)
	fmt.Print(result.Content)

	// second pass is a no-op
	fmt.Printf("Again: %s\n", engine.Rewrite(result.Content).Status)

	// Output:
	// Status: changed
	// Replacements: 1
	// import { Relation } from "typeorm";
	// @ManyToOne(() => Order, (order) => order.items) @JoinColumn() order: Relation<Order>;
	// Again: unchanged
}
