// Package validator holds the client-side input checks run before an
// analysis request is sent: a normalizer and a predicate for URLs and for
// domain names. Nothing here touches the network.
package validator
