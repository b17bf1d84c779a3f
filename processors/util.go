// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package processors

func merge(a []int, b []int) []int {
	lenA := len(a)
	lenB := len(b)

	i := 0
	j := 0

	ret := make([]int, 0)

	for i < lenA && j < lenB {
		if a[i] == b[j] {
			if len(ret) == 0 || ret[len(ret)-1] != a[i] {
				ret = append(ret, a[i])
			}
			i++
			j++
		} else if a[i] < b[j] {
			if len(ret) == 0 || ret[len(ret)-1] != a[i] {
				ret = append(ret, a[i])
			}
			i++
		} else {
			if len(ret) == 0 || ret[len(ret)-1] != b[j] {
				ret = append(ret, b[j])
			}
			j++
		}
	}

	for i < lenA {
		if len(ret) == 0 || ret[len(ret)-1] != a[i] {
			ret = append(ret, a[i])
		}
		i++
	}

	for j < lenB {
		if len(ret) == 0 || ret[len(ret)-1] != b[j] {
			ret = append(ret, b[j])
		}
		j++
	}

	return ret
}

func imax(x, y int) int {
	if x > y {
		return x
	}
	return y
}

func imin(x, y int) int {
	if x < y {
		return x
	}
	return y
}
