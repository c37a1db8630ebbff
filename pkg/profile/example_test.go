package profile_test

import (
	"fmt"

	"github.com/pyprac/profilesvg/pkg/profile"
)

func ExampleParse() {
	rec, err := profile.Parse(`{firstName: 'Ann', age: 20, marks: {'BEE': 88}}`)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(rec.Lookup("firstName"))
	fmt.Println(rec.Lookup("age"))
	fmt.Println(rec.Lookup("marks.BEE"))
	fmt.Printf("%q\n", rec.Lookup("marks.AC").String())
	// Output:
	// Ann
	// 20
	// 88
	// ""
}

func ExampleNormalize() {
	fmt.Println(profile.Normalize(`{'First Name': 'Ann', active: True}`))
	// Output:
	// {"First Name": "Ann", "active": true}
}
