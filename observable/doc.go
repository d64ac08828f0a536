// Package observable provides a base for objects that announce property changes and the
// changes those properties cascade into.
//
// A type declares which of its properties notify which others with struct tags, and embeds
// Base:
//
//	type Person struct {
//	    observable.Base
//	    first    string `notifies:"FullName"`
//	    last     string `notifies:"FullName"`
//	    FullName string
//	}
//
//	func NewPerson() *Person {
//	    p := &Person{}
//	    p.MustInit(p)
//	    return p
//	}
//
//	func (p *Person) SetFirst(v string) { observable.Set(&p.Base, &p.first, v, "first") }
//
// Changing first raises "first" and then "FullName" on both the changing and the changed
// channel. The graph of a type is built and validated once, on the first Init for that
// type, and shared by every instance afterwards.
package observable
