/*
 * a2e - Decimal-mode (BCD) addition and subtraction.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package cpu

// Both ADC and SBC use per-nibble decimal arithmetic, in two routines:
// adcDecimal applies a +$06/+$60 correction to the nibble sums, and
// sbcDecimal subtracts digit by digit, borrowing 10 where a digit goes
// negative.

// adcDecimal adds a and operand as two-digit BCD bytes with carryIn.
// overflow is computed from the signed 8-bit combination of the high
// nibble and the corrected low nibble *before* the final >=$A0 high-byte
// correction is folded in, matching w65c02_logic_adc: the corrected
// result can wrap a sign bit that the pre-correction sum never crossed,
// so V must be read off the uncorrected sum.
func adcDecimal(a, operand uint8, carryIn bool) (result uint8, carryOut, overflow bool) {
	var cin int
	if carryIn {
		cin = 1
	}

	al := int(a&0x0F) + int(operand&0x0F) + cin
	if al >= 0x0A {
		al = ((al + 0x06) & 0x0F) + 0x10
	}

	as := int(int8(a&0xF0)) + int(int8(operand&0xF0)) + al
	overflow = as < -128 || as > 127

	ah := int(a&0xF0) + int(operand&0xF0) + al
	if ah >= 0xA0 {
		ah += 0x60
	}
	result = uint8(ah)
	carryOut = ah >= 0x100
	return result, carryOut, overflow
}

// sbcDecimal subtracts operand from a as two-digit BCD bytes with
// carryIn (1 meaning no borrow), again per nibble. binResult is the
// plain binary subtraction a - operand - borrowIn before any BCD
// correction; V must be read off that value rather than the corrected
// result, matching w65c02_logic_sbc.
func sbcDecimal(a, operand uint8, carryIn bool) (result uint8, carryOut bool, binResult uint8) {
	var borrowIn uint8
	if !carryIn {
		borrowIn = 1
	}
	binResult = a - operand - borrowIn

	loA := int(a & 0x0F)
	loB := int(operand&0x0F) + int(borrowIn)
	lo := loA - loB
	var borrow int
	if lo < 0 {
		lo += 10
		borrow = 1
	}

	hiA := int(a >> 4)
	hiB := int(operand>>4) + borrow
	hi := hiA - hiB
	if hi < 0 {
		hi += 10
		carryOut = false
	} else {
		carryOut = true
	}

	result = uint8(hi<<4) | uint8(lo&0x0F)
	return result, carryOut, binResult
}

// overflowAdd reports the V flag for a signed addition a + b + carryIn
// producing result, independent of decimal or binary mode.
func overflowAdd(a, b, result uint8) bool {
	return (^(a ^ b) & (a ^ result) & 0x80) != 0
}

// overflowSub reports the V flag for a signed subtraction a - b.
func overflowSub(a, b, result uint8) bool {
	return ((a ^ b) & (a ^ result) & 0x80) != 0
}
