// Package calc implements a calculator for arithmetic expressions over
// float64.
//
// The syntax is what you'd type into a desk calculator with a few extras.
// "2(3+4)" and "2pi" are implicit multiplications. "2^3^2" is "2^(3^2)".
// "6!!" is the double factorial 6*4*2, "|x|" is the absolute value of x, and
// "50+10%" adds ten percent of fifty. Functions take parenthesized arguments:
// "sin(pi/2)", "root(27, 3)", "log(100)", "log_2(8)".
//
// Names are resolved against an Env while parsing. The constants e, pi, and
// phi are always defined; "x = 5" defines x for later expressions parsed with
// the same Env and itself evaluates to 1.
package calc
