// Package language classifies file paths into language tags by extension.
package language
