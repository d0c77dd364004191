/*
Package utils provides decorators shared by all applications: panic
recovery, logging, savepoints and action events.
*/
package utils
