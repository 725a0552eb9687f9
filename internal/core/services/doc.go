// Package services holds the annotation, document, preference, render and
// settings logic behind the driving ports. Services reach storage, codecs
// and the canvas only through the driven port interfaces.
package services
