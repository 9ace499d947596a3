// Package utils holds the ambient plumbing shared by every gitpair command:
// the Viper-backed ConfigurationLoader, the zap LoggerFactory and a writer that
// flushes buffered terminals after every prompt.
package utils
