package formula

import "strings"

// callBuiltin dispatches a function call by name, case-insensitively.
// arguments arrive already evaluated, in order.
func callBuiltin(name string, args []Value) Value {
	switch strings.ToUpper(name) {
	case "SUM":
		return builtinSUM(args)
	case "AVERAGE":
		return builtinAVERAGE(args)
	case "COUNT":
		return builtinCOUNT(args)
	case "MAX":
		return builtinMAX(args)
	case "MIN":
		return builtinMIN(args)
	case "IF":
		return builtinIF(args)
	default:
		return errUnknownFunction(name)
	}
}

// flattenNumbers collects every numerically-coercible value across the
// arguments: a range contributes each coercible cell, a scalar contributes
// itself. non-coercible values are silently skipped.
func flattenNumbers(args []Value) []float64 {
	var nums []float64
	for _, arg := range args {
		if rows, ok := arg.([][]Value); ok {
			for _, row := range rows {
				for _, cell := range row {
					if num, ok := toNumber(cell); ok {
						nums = append(nums, num)
					}
				}
			}
		} else if num, ok := toNumber(arg); ok {
			nums = append(nums, num)
		}
	}
	return nums
}

func builtinSUM(args []Value) Value {
	sum := 0.0
	for _, num := range flattenNumbers(args) {
		sum += num
	}
	return sum
}

func builtinAVERAGE(args []Value) Value {
	nums := flattenNumbers(args)
	if len(nums) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, num := range nums {
		sum += num
	}
	return sum / float64(len(nums))
}

func builtinCOUNT(args []Value) Value {
	return float64(len(flattenNumbers(args)))
}

// MAX and MIN error on an empty flattening where SUM and AVERAGE default
// to zero. the asymmetry is deliberate Excel-like behavior.

func builtinMAX(args []Value) Value {
	nums := flattenNumbers(args)
	if len(nums) == 0 {
		return errBareError
	}
	max := nums[0]
	for _, num := range nums[1:] {
		if num > max {
			max = num
		}
	}
	return max
}

func builtinMIN(args []Value) Value {
	nums := flattenNumbers(args)
	if len(nums) == 0 {
		return errBareError
	}
	min := nums[0]
	for _, num := range nums[1:] {
		if num < min {
			min = num
		}
	}
	return min
}

func builtinIF(args []Value) Value {
	if len(args) < 2 {
		return "#ERROR: IF 函数需要至少 2 个参数"
	}
	if isTruthy(args[0]) {
		return args[1]
	}
	if len(args) >= 3 {
		return args[2]
	}
	return nil
}
