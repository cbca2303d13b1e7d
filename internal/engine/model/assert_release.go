//go:build !animdebug

package model

const debugAssertions = false
