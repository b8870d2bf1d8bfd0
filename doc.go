/*
Package gnum provides Value, a signed integer of one of five fixed widths
(8, 16, 32, 64 or 128 bits), for tools that display or edit raw numbers at a
chosen word size: hex editors, debuggers, assemblers.

Values are value types; all operations except FlipBit, Shl and Shr return
new values, and those three only modify the caller's own variable.

Simple example:

	v, _ := gnum.FromBase("ff", gnum.Hex)
	fmt.Println(v.Size(), v)                    // word 255
	fmt.Println(v.ToByte())                     // -1
	fmt.Println(v.ToByte().ToBase(gnum.Binary)) // 11111111

Text is parsed strictly: no prefixes, no whitespace, no separators. Binary,
Octal and Hex are read as bit patterns; Decimal is read as a signed number
and is the only radix that accepts a '-'. FromBase picks the narrowest width
that holds the result; ParseSize keeps the width you ask for:

	FromBase(text string, radix Radix) (Value, bool)
	Parse(text string, radix Radix) mo.Option[Value]
	ParseSize(text string, radix Radix, size Size) (Value, bool)
	ParsePrefixed(text string, radix Radix) (Value, bool)

Rendering pads Binary, Octal and Hex to the full width of the value. Octal
does not divide evenly into any supported width; it is padded to
ceil(bits/3) digits.

Narrowing with Resize keeps the low-order bits (two's complement
truncation); it never saturates.

The same conversions are available for Go's native integer types through
the generic ToBinary, ToHexLower, FromHex (etc) functions, and for raw 128-bit
patterns through FormatPattern and ParsePattern.

Value supports the following formatting and marshalling interfaces:

	- fmt.Formatter
	- fmt.Stringer
	- json.Marshaler
	- json.Unmarshaler
	- encoding.TextMarshaler
	- encoding.TextUnmarshaler
	- bson.Getter
	- bson.Setter

*/
package gnum
